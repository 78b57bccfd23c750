package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics. In the default mode every diagnostic is a
// single `[Category][line: L, col: C] message` line; with Snippets enabled
// the offending source line is printed underneath with a caret.
type Formatter struct {
	// Snippets turns on source excerpts under each diagnostic.
	Snippets bool
	// Limit caps the number of diagnostics printed by FormatAll (0 = no cap).
	Limit int

	sourceCache map[string]string // Cache of source files by filename
}

// NewFormatter creates a new diagnostic formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		sourceCache: make(map[string]string),
	}
}

// SetSource registers source text for a filename so snippets do not need
// to read it from disk. The REPL and tests use this for in-memory input.
func (f *Formatter) SetSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	if filename == "" {
		return "", fmt.Errorf("no source registered for anonymous input")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// FormatAll renders ds in order, honoring Limit.
func (f *Formatter) FormatAll(w io.Writer, ds []Diagnostic) {
	shown := ds
	if f.Limit > 0 && len(ds) > f.Limit {
		shown = ds[:f.Limit]
	}
	for _, d := range shown {
		f.Format(w, d)
	}
	if hidden := len(ds) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "... and %d more\n", hidden)
	}
}

// Format renders a single diagnostic.
func (f *Formatter) Format(w io.Writer, d Diagnostic) {
	fmt.Fprintln(w, d.String())
	if !f.Snippets {
		return
	}
	if d.Span.IsValid() {
		if src, err := f.LoadSource(d.Span.Filename); err == nil {
			f.printSnippet(w, src, d.Span)
		}
	}
	f.printHelp(w, d)
}

// printSnippet prints the line the span points at with a caret underline.
func (f *Formatter) printSnippet(w io.Writer, src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.Line > len(lines) {
		return
	}
	lineContent := strings.TrimRight(lines[span.Line-1], "\r")
	lineNumStr := fmt.Sprintf("%d", span.Line)
	gutter := strings.Repeat(" ", len(lineNumStr))

	if span.Filename != "" {
		fmt.Fprintf(w, "%s--> %s\n", gutter, span.String())
	}
	fmt.Fprintf(w, "%s |\n", gutter)
	fmt.Fprintf(w, "%s | %s\n", lineNumStr, lineContent)

	width := max(1, span.End-span.Start)
	runes := []rune(lineContent)
	underline := make([]rune, 0, len(runes)+width)
	for i := 0; i < span.Column-1 && i < len(runes); i++ {
		if runes[i] == '\t' {
			underline = append(underline, '\t')
		} else {
			underline = append(underline, ' ')
		}
	}
	underline = append(underline, []rune(strings.Repeat("^", width))...)
	fmt.Fprintf(w, "%s | %s\n", gutter, string(underline))
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(w io.Writer, d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(w, "help: %s\n", d.Help)
	}
}
