package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestDefaultRegistryBuiltins(t *testing.T) {
	r := Default()
	for _, name := range []string{"mono", "regular", "bold", "7x13", "tomthumb", "freemono"} {
		face, err := r.Face(name, 24)
		if err != nil {
			t.Fatalf("Face(%q): %v", name, err)
		}
		if w := face.LineWidth("A"); w <= 0 {
			t.Fatalf("%s: LineWidth(\"A\") = %d", name, w)
		}
	}
	if Default() != r {
		t.Fatalf("Default must return the same registry")
	}
}

func TestUnknownFont(t *testing.T) {
	_, err := NewRegistry().Face("nope", 12)
	if !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("expected ErrUnknownFont, got %v", err)
	}
}

func TestMalformedFontIsRecoverable(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", Outline("broken", []byte("definitely not a font")))
	for i := 0; i < 2; i++ {
		_, err := r.Face("broken", 12)
		if !errors.Is(err, ErrFontLoad) {
			t.Fatalf("attempt %d: expected ErrFontLoad, got %v", i, err)
		}
		var le *LoadError
		if !errors.As(err, &le) || le.Name != "broken" {
			t.Fatalf("expected *LoadError for broken, got %#v", err)
		}
	}

	r.Register("empty", Outline("empty", nil))
	if _, err := r.Face("empty", 12); !errors.Is(err, ErrFontLoad) {
		t.Fatalf("expected ErrFontLoad for empty data, got %v", err)
	}
}

func TestFileFonts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	r := NewRegistry()
	face, err := r.Face(FilePrefix+path, 16)
	if err != nil {
		t.Fatalf("Face(file): %v", err)
	}
	if face.LineWidth("ab") <= 0 {
		t.Fatalf("zero width from file font")
	}
	src, err := r.Lookup(FilePrefix + path)
	if err != nil || src.Kind() != KindOutline {
		t.Fatalf("Lookup(file) = %v, %v", src, err)
	}

	_, err = r.Face(FilePrefix+filepath.Join(dir, "missing.ttf"), 16)
	if !errors.Is(err, ErrFontLoad) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrFontLoad wrapping ErrNotExist, got %v", err)
	}
}

func TestOutlineFaceRejectsNonPositiveSize(t *testing.T) {
	if _, err := Default().Face("mono", 0); err == nil {
		t.Fatalf("expected error for zero size")
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)
	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	if src, _ := r.Lookup("tomthumb"); src.Kind() != KindBitmap {
		t.Fatalf("tomthumb should be a bitmap font")
	}
}
