package interpreter

import (
	"fmt"

	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/lexer"
)

// RuntimeError halts the running program.
type RuntimeError struct {
	Code    diag.Code
	Message string
	Span    lexer.Span
}

func (e *RuntimeError) Error() string {
	return e.ToDiagnostic().String()
}

// ToDiagnostic converts the error into a RuntimeError diagnostic.
func (e *RuntimeError) ToDiagnostic() diag.Diagnostic {
	return diag.New(diag.CategoryRuntime, e.Code, e.Message, e.Span.Diag())
}

func runtimeErrorf(code diag.Code, span lexer.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}
