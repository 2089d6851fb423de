// Package dsl parses label scripts.
//
// A script names a label, optionally overrides canvas settings, and lists
// drawing operations in order:
//
//	label "shelf" height=64 {
//	  text "Hello\nWorld" font=mono size=24 centre
//	  pad 2mm
//	  barcode qr "https://example.com"
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:pt|mm|cm|in|px)?\b`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z0-9_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[=;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Script is the root AST node of a label script.
type Script struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       StringLiteral  `parser:"Newline* 'label' @String?"`
	Attrs      []*Attribute   `parser:"@@*"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Statement is one drawing operation.
type Statement struct {
	Pos     lexer.Position    `parser:"" json:"-"`
	Text    *TextStatement    `parser:"  @@"`
	Pad     *PadStatement     `parser:"| @@"`
	Barcode *BarcodeStatement `parser:"| @@"`
}

// Kind returns the statement keyword.
func (s *Statement) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Text != nil:
		return "text"
	case s.Pad != nil:
		return "pad"
	case s.Barcode != nil:
		return "barcode"
	default:
		return "unknown"
	}
}

// TextStatement draws a (possibly multi-line) string.
type TextStatement struct {
	Value StringLiteral `parser:"'text' @String"`
	Attrs []*Attribute  `parser:"@@*"`
}

// PadStatement advances the cursor. Amount keeps its unit suffix.
type PadStatement struct {
	Amount string `parser:"'pad' @Number"`
}

// BarcodeStatement requests a barcode of the given symbology.
type BarcodeStatement struct {
	Symbology string        `parser:"'barcode' @Ident"`
	Value     StringLiteral `parser:"@String"`
	Attrs     []*Attribute  `parser:"@@*"`
}

// Attribute is a key with an optional value; a bare key is a flag.
type Attribute struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"( '=' @@ )?"`
}

// Value is an attribute value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Raw returns the value as written, with strings unquoted.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a label script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses a label script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
