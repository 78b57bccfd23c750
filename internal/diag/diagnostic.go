package diag

import "fmt"

// Category identifies the family a diagnostic belongs to. Its string form
// is what users see between the leading brackets.
type Category string

const (
	CategoryLexer       Category = "LexerError"
	CategoryParser      Category = "ParserError"
	CategoryDeclaration Category = "DeclarationError"
	CategoryName        Category = "NameError"
	CategorySemantic    Category = "SemanticError"
	CategoryRuntime     Category = "RuntimeError"
	CategoryTermination Category = "TerminationError"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerUnterminatedString       Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedBlockComment Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerIllegalRune              Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerMalformedNumber          Code = "LEXER_MALFORMED_NUMBER"

	// Terminator normalization
	CodeTerminationMixedStyle Code = "TERMINATION_MIXED_STYLE"
	CodeTerminationInParens   Code = "TERMINATION_IN_PARENS"

	// Parser errors
	CodeParserUnexpectedToken   Code = "PARSER_UNEXPECTED_TOKEN"
	CodeParserMissingTerminator Code = "PARSER_MISSING_TERMINATOR"
	CodeParserMissingKeyword    Code = "PARSER_MISSING_KEYWORD"
	CodeParserTooDeep           Code = "PARSER_TOO_DEEP"
	CodeDeclarationDuplicate    Code = "DECLARATION_DUPLICATE"
	CodeNameUndefined           Code = "NAME_UNDEFINED"

	// Semantic errors
	CodeSemanticMismatch         Code = "SEMANTIC_MISMATCH"
	CodeSemanticUndefined        Code = "SEMANTIC_UNDEFINED"
	CodeSemanticNoneValue        Code = "SEMANTIC_NONE_VALUE"
	CodeSemanticInvalidOperation Code = "SEMANTIC_INVALID_OPERATION"
	CodeSemanticInvalidCondition Code = "SEMANTIC_INVALID_CONDITION"
	CodeSemanticImmutable        Code = "SEMANTIC_IMMUTABLE"
	CodeSemanticUnknownBuiltin   Code = "SEMANTIC_UNKNOWN_BUILTIN"
	CodeSemanticArity            Code = "SEMANTIC_ARITY"

	// Runtime errors
	CodeRuntimeDivisionByZero Code = "RUNTIME_DIVISION_BY_ZERO"
	CodeRuntimeOverflow       Code = "RUNTIME_INTEGER_OVERFLOW"
	CodeRuntimeTypeMismatch   Code = "RUNTIME_TYPE_MISMATCH"
	CodeRuntimeUndefined      Code = "RUNTIME_UNDEFINED"
	CodeRuntimeUnknownBuiltin Code = "RUNTIME_UNKNOWN_BUILTIN"
	CodeRuntimeBuiltin        Code = "RUNTIME_BUILTIN"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a positioned message surfaced to end-users.
type Diagnostic struct {
	Category Category
	Code     Code
	Message  string
	Span     Span
	Notes    []string
	Help     string
}

// New builds a diagnostic for the given category.
func New(category Category, code Code, message string, span Span) Diagnostic {
	return Diagnostic{
		Category: category,
		Code:     code,
		Message:  message,
		Span:     span,
	}
}

// String renders the diagnostic as `[Category][line: L, col: C] message`.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s][line: %d, col: %d] %s", d.Category, d.Span.Line, d.Span.Column, d.Message)
}

// Error lets a diagnostic travel through error returns.
func (d Diagnostic) Error() string {
	return d.String()
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
