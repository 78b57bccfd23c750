// Package normalizer rewrites the lexer's layout-sensitive token stream so
// that SEMICOLON is the only statement terminator the parser sees.
package normalizer

import (
	"fmt"

	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
)

// Style is the terminator convention a source file uses.
type Style int

const (
	// StyleAuto lets the first terminator in the file decide.
	StyleAuto Style = iota
	StyleNewline
	StyleSemicolon
)

func (s Style) String() string {
	switch s {
	case StyleNewline:
		return "newline"
	case StyleSemicolon:
		return "semicolon"
	default:
		return "auto"
	}
}

// ParseStyle maps the configuration spelling of a style to its value.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "auto":
		return StyleAuto, nil
	case "newline":
		return StyleNewline, nil
	case "semicolon":
		return StyleSemicolon, nil
	}
	return StyleAuto, fmt.Errorf("unknown terminator style %q", s)
}

// Option configures a normalization run.
type Option func(*normalizer)

// WithStyle fixes the terminator style up front instead of inferring it.
func WithStyle(s Style) Option {
	return func(n *normalizer) {
		n.style = s
	}
}

type normalizer struct {
	sink  diag.Sink
	style Style
	out   []lexer.Token
}

// Normalize returns a new token slice in which newlines are either turned
// into SEMICOLON tokens or dropped. Mixing the two terminator styles in
// one file is reported once per offending terminator.
func Normalize(tokens []lexer.Token, sink diag.Sink, opts ...Option) []lexer.Token {
	n := &normalizer{
		sink: sink,
		out:  make([]lexer.Token, 0, len(tokens)+1),
	}
	for _, opt := range opts {
		opt(n)
	}

	depth := 0
	for i, tok := range tokens {
		switch tok.Type {
		case lexer.LPAREN:
			depth++
			n.out = append(n.out, tok)

		case lexer.RPAREN:
			if depth > 0 {
				depth--
			}
			n.out = append(n.out, tok)

		case lexer.NEWLINE:
			if depth > 0 || !n.prevEndsStatement() || nextType(tokens, i) == lexer.LBRACE {
				continue
			}
			n.terminator(StyleNewline, tok)
			n.out = append(n.out, semicolonAt(tok))

		case lexer.SEMICOLON:
			if depth > 0 {
				n.report(diag.CodeTerminationInParens, "semicolon found in an unexpected place, remove it", tok)
				continue
			}
			n.terminator(StyleSemicolon, tok)
			n.out = append(n.out, tok)

		case lexer.EOF:
			if n.style != StyleSemicolon && n.prevEndsStatement() {
				n.out = append(n.out, semicolonAt(tok))
			}
			n.out = append(n.out, tok)

		default:
			n.out = append(n.out, tok)
		}
	}
	return n.out
}

// terminator records a terminator of kind, fixing the style on first use.
func (n *normalizer) terminator(kind Style, tok lexer.Token) {
	if n.style == StyleAuto {
		n.style = kind
		return
	}
	if n.style != kind {
		n.report(diag.CodeTerminationMixedStyle,
			"you are using both newlines and semicolons as terminators; please use only one style", tok)
	}
}

func (n *normalizer) report(code diag.Code, msg string, tok lexer.Token) {
	n.sink.Add(diag.New(diag.CategoryTermination, code, msg, tok.Span.Diag()))
}

func (n *normalizer) prevEndsStatement() bool {
	if len(n.out) == 0 {
		return false
	}
	return endsStatement(n.out[len(n.out)-1].Type)
}

// endsStatement reports whether a statement may end with a token of type t.
func endsStatement(t lexer.TokenType) bool {
	switch t {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.IDENT,
		lexer.TRUE, lexer.FALSE, lexer.NONE, lexer.RPAREN,
		lexer.CONTINUE, lexer.BREAK:
		return true
	}
	return false
}

// nextType returns the type of the first non-newline token after i.
func nextType(tokens []lexer.Token, i int) lexer.TokenType {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Type != lexer.NEWLINE {
			return tokens[j].Type
		}
	}
	return lexer.EOF
}

func semicolonAt(tok lexer.Token) lexer.Token {
	return lexer.Token{
		Type:  lexer.SEMICOLON,
		Raw:   ";",
		Value: ";",
		Span:  lexer.Span{Filename: tok.Span.Filename, Line: tok.Span.Line, Column: tok.Span.Column, Start: tok.Span.Start, End: tok.Span.Start},
	}
}
