package lexer

import "github.com/akorn-lang/akorn/internal/diag"

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune
	End      int    // exclusive end index
}

// Diag converts the span into the shared diagnostic span.
func (s Span) Diag() diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source
	Value string // decoded value (for strings, same as Raw for others)
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // x, total, _tmp
	INT    TokenType = "INT"    // 1343456
	FLOAT  TokenType = "FLOAT"  // 3.14
	STRING TokenType = "STRING" // "hello", 'hello'

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	POWER    TokenType = "**"

	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="
	POWER_ASSIGN    TokenType = "**="

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	// Keywords
	VAR      TokenType = "VAR"
	LET      TokenType = "LET"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	ELIF     TokenType = "ELIF"
	WHILE    TokenType = "WHILE"
	LOOP     TokenType = "LOOP"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NONE     TokenType = "NONE"
	AND      TokenType = "AND"
	OR       TokenType = "OR"
	NOT      TokenType = "NOT"

	// Type keywords
	TYPE_INT    TokenType = "TYPE_INT"
	TYPE_FLOAT  TokenType = "TYPE_FLOAT"
	TYPE_STRING TokenType = "TYPE_STRING"
	TYPE_BOOL   TokenType = "TYPE_BOOL"
)

var keywords = map[string]TokenType{
	"var":      VAR,
	"let":      LET,
	"int":      TYPE_INT,
	"float":    TYPE_FLOAT,
	"string":   TYPE_STRING,
	"bool":     TYPE_BOOL,
	"true":     TRUE,
	"false":    FALSE,
	"if":       IF,
	"else":     ELSE,
	"elif":     ELIF,
	"while":    WHILE,
	"loop":     LOOP,
	"break":    BREAK,
	"continue": CONTINUE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"none":     NONE,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsTypeKeyword reports whether t names one of the declarable types.
func IsTypeKeyword(t TokenType) bool {
	switch t {
	case TYPE_INT, TYPE_FLOAT, TYPE_STRING, TYPE_BOOL:
		return true
	}
	return false
}

// CompoundOperator maps a compound assignment token to the arithmetic
// operator it applies, e.g. `+=` to `+`.
func CompoundOperator(t TokenType) (TokenType, bool) {
	switch t {
	case PLUS_ASSIGN:
		return PLUS, true
	case MINUS_ASSIGN:
		return MINUS, true
	case ASTERISK_ASSIGN:
		return ASTERISK, true
	case SLASH_ASSIGN:
		return SLASH, true
	case PERCENT_ASSIGN:
		return PERCENT, true
	case POWER_ASSIGN:
		return POWER, true
	}
	return "", false
}
