package diag

import "io"

// Sink receives diagnostics from every phase of the pipeline.
type Sink interface {
	Add(d Diagnostic)
	HasErrors() bool
}

// Reporter is the ordered, in-memory Sink used by the driver and the CLI.
type Reporter struct {
	diagnostics []Diagnostic
	formatter   *Formatter
}

// NewReporter creates an empty reporter that renders with f.
// A nil formatter renders in the plain one-line form.
func NewReporter(f *Formatter) *Reporter {
	if f == nil {
		f = NewFormatter()
	}
	return &Reporter{formatter: f}
}

// Add records d.
func (r *Reporter) Add(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

// HasErrors reports whether anything has been recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.diagnostics) > 0
}

// Diagnostics returns the recorded diagnostics in insertion order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Count returns how many diagnostics of the given category were recorded.
func (r *Reporter) Count(category Category) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Category == category {
			n++
		}
	}
	return n
}

// Clear drops every recorded diagnostic.
func (r *Reporter) Clear() {
	r.diagnostics = nil
}

// Formatter exposes the reporter's formatter so callers can register sources.
func (r *Reporter) Formatter() *Formatter {
	return r.formatter
}

// Display writes every recorded diagnostic to w.
func (r *Reporter) Display(w io.Writer) {
	r.formatter.FormatAll(w, r.diagnostics)
}
