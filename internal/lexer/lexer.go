package lexer

import (
	"strconv"

	"github.com/akorn-lang/akorn/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrUnterminatedBlockComment
	ErrIllegalRune
	ErrMalformedNumber
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrMalformedNumber:
		return diag.CodeLexerMalformedNumber
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.New(diag.CategoryLexer, e.Kind.diagnosticCode(), e.Message, e.Span.Diag())
}

// Lexer represents the lexer state
type Lexer struct {
	filename string
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	return NewFile("", input)
}

// NewFile creates a lexer whose spans carry filename.
func NewFile(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []rune(input),
		pos:      -1, // start before first rune
		line:     1,
	}
	l.read() // move to first character
	return l
}

// Tokenize lexes src to completion. Comments and blanks are dropped,
// every lexical error is forwarded to sink, and the result always ends
// with exactly one EOF token.
func Tokenize(src string, sink diag.Sink) []Token {
	return TokenizeFile("", src, sink)
}

// TokenizeFile is Tokenize with a filename attached to every span.
func TokenizeFile(filename, src string, sink diag.Sink) []Token {
	l := NewFile(filename, src)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	for _, err := range l.Errors {
		sink.Add(err.ToDiagnostic())
	}
	return tokens
}

// read advances the lexer to the next character. line/column always
// reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// Past the last rune; normalize position to virtual EOF
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			l.column = 1
		}
		l.pos = inputLen
		l.ch = 0
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// peekN returns the character n positions ahead without advancing
func (l *Lexer) peekN(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// currentSpanStart returns the position of the character about to be tokenized
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos int, raw, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      l.pos,
		},
	}
}

// operator consumes width runes and emits tokType for them.
func (l *Lexer) operator(tokType TokenType, width int) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	for i := 0; i < width; i++ {
		l.read()
	}
	raw := string(l.input[startPos:l.pos])
	return l.makeToken(tokType, startLine, startColumn, startPos, raw, raw)
}

// skipBlanks discards spaces, tabs and carriage returns.
func (l *Lexer) skipBlanks() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.read()
	}
}

// skipLineComment discards up to, but not including, the next newline.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.read()
	}
}

// skipBlockComment discards a `/* ... */` comment. Block comments do not nest.
func (l *Lexer) skipBlockComment() {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // consume '/'
	l.read() // consume '*'
	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return
		}
		if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			return
		}
		l.read()
	}
}

// NextToken returns the next token from the input. Lexical errors are
// recorded on the lexer and surface as ILLEGAL tokens.
func (l *Lexer) NextToken() Token {
	for {
		l.skipBlanks()

		switch l.ch {
		case 0:
			startLine, startColumn, startPos := l.currentSpanStart()
			return l.makeToken(EOF, startLine, startColumn, startPos, "", "")

		case '\n':
			return l.operator(NEWLINE, 1)

		case '=':
			if l.peek() == '=' {
				return l.operator(EQ, 2)
			}
			return l.operator(ASSIGN, 1)

		case '+':
			if l.peek() == '=' {
				return l.operator(PLUS_ASSIGN, 2)
			}
			return l.operator(PLUS, 1)

		case '-':
			if l.peek() == '=' {
				return l.operator(MINUS_ASSIGN, 2)
			}
			return l.operator(MINUS, 1)

		case '*':
			if l.peek() == '*' {
				if l.peekN(2) == '=' {
					return l.operator(POWER_ASSIGN, 3)
				}
				return l.operator(POWER, 2)
			}
			if l.peek() == '=' {
				return l.operator(ASTERISK_ASSIGN, 2)
			}
			return l.operator(ASTERISK, 1)

		case '/':
			switch l.peek() {
			case '/':
				l.skipLineComment()
				continue
			case '*':
				l.skipBlockComment()
				continue
			case '=':
				return l.operator(SLASH_ASSIGN, 2)
			default:
				return l.operator(SLASH, 1)
			}

		case '%':
			if l.peek() == '=' {
				return l.operator(PERCENT_ASSIGN, 2)
			}
			return l.operator(PERCENT, 1)

		case '!':
			if l.peek() == '=' {
				return l.operator(NOT_EQ, 2)
			}
			return l.illegal()

		case '<':
			if l.peek() == '=' {
				return l.operator(LE, 2)
			}
			return l.operator(LT, 1)

		case '>':
			if l.peek() == '=' {
				return l.operator(GE, 2)
			}
			return l.operator(GT, 1)

		case ';':
			return l.operator(SEMICOLON, 1)
		case ',':
			return l.operator(COMMA, 1)
		case '(':
			return l.operator(LPAREN, 1)
		case ')':
			return l.operator(RPAREN, 1)
		case '{':
			return l.operator(LBRACE, 1)
		case '}':
			return l.operator(RBRACE, 1)

		case '"', '\'':
			startLine, startColumn, startPos := l.currentSpanStart()
			raw, value, terminated := l.readString(startLine, startColumn, startPos, l.ch)
			if !terminated {
				return l.makeToken(ILLEGAL, startLine, startColumn, startPos, raw, raw)
			}
			return l.makeToken(STRING, startLine, startColumn, startPos, raw, value)

		default:
			if isLetter(l.ch) {
				startLine, startColumn, startPos := l.currentSpanStart()
				literal := l.readIdentifier()
				return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, literal, literal)
			}
			if isDigit(l.ch) {
				return l.readNumber()
			}
			return l.illegal()
		}
	}
}

// illegal records an unexpected character and skips it.
func (l *Lexer) illegal() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch)
	l.read()
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, raw, raw)
	l.addError(ErrIllegalRune, "unexpected character "+strconv.Quote(raw), tok.Span)
	return tok
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads digits with at most one '.', which must be followed by
// a digit to belong to the literal.
func (l *Lexer) readNumber() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	tokType := INT
	for isDigit(l.ch) {
		l.read()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		tokType = FLOAT
		l.read() // consume '.'
		for isDigit(l.ch) {
			l.read()
		}
	}
	literal := string(l.input[startPos:l.pos])
	tok := l.makeToken(tokType, startLine, startColumn, startPos, literal, literal)

	var err error
	if tokType == INT {
		_, err = strconv.ParseInt(literal, 10, 64)
	} else {
		_, err = strconv.ParseFloat(literal, 64)
	}
	if err != nil {
		l.addError(ErrMalformedNumber, "malformed numeric literal "+literal, tok.Span)
		tok.Type = ILLEGAL
	}
	return tok
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// readString reads a string literal delimited by quote. Only \n and \t
// are decoded; any other backslash pair is kept as written.
func (l *Lexer) readString(startLine, startColumn, startPos int, quote rune) (raw string, value string, terminated bool) {
	var decoded []rune

	l.read() // skip opening quote
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.addError(
				ErrUnterminatedString,
				"unterminated string literal",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return string(l.input[startPos:l.pos]), string(decoded), false
		}
		if l.ch == quote {
			l.read() // consume closing quote
			return string(l.input[startPos:l.pos]), string(decoded), true
		}
		if l.ch == '\\' && l.peek() != 0 && l.peek() != '\n' {
			l.read() // skip '\'
			switch l.ch {
			case 'n':
				decoded = append(decoded, '\n')
			case 't':
				decoded = append(decoded, '\t')
			default:
				decoded = append(decoded, '\\', l.ch)
			}
			l.read()
			continue
		}
		decoded = append(decoded, l.ch)
		l.read()
	}
}
