// Package scope implements the lexical scope chain shared by the parser,
// the semantic checker and the interpreter.
package scope

import (
	"sort"

	"github.com/akorn-lang/akorn/internal/runtime"
)

// Symbol is a declared variable.
type Symbol struct {
	Name    string
	Type    runtime.Kind
	Mutable bool
	// IsNone stays true until a non-none value is bound.
	IsNone bool
	Value  runtime.Value
}

// Scope represents a lexical scope containing symbols.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

// New creates a new scope with an optional parent.
func New(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare adds name to this scope. It returns false, leaving the existing
// symbol untouched, when name is already declared here. A nil or none
// value marks the symbol as holding none.
func (s *Scope) Declare(name string, typ runtime.Kind, mutable bool, value runtime.Value) bool {
	if _, exists := s.symbols[name]; exists {
		return false
	}
	if value == nil {
		value = runtime.None
	}
	s.symbols[name] = &Symbol{
		Name:    name,
		Type:    typ,
		Mutable: mutable,
		IsNone:  runtime.IsNone(value),
		Value:   value,
	}
	return true
}

// Assign rebinds the nearest symbol called name. It returns false when
// name is not declared anywhere on the chain.
func (s *Scope) Assign(name string, value runtime.Value) bool {
	sym, ok := s.Lookup(name)
	if !ok {
		return false
	}
	if value == nil {
		value = runtime.None
	}
	sym.Value = value
	sym.IsNone = runtime.IsNone(value)
	return true
}

// Lookup finds a symbol in the current scope or any parent scope.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Local finds a symbol declared directly in this scope.
func (s *Scope) Local(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// LookupType returns the declared type of the nearest symbol called name.
func (s *Scope) LookupType(name string) (runtime.Kind, bool) {
	sym, ok := s.Lookup(name)
	if !ok {
		return runtime.KindInvalid, false
	}
	return sym.Type, true
}

// Get returns the value bound to the nearest symbol called name.
func (s *Scope) Get(name string) (runtime.Value, bool) {
	sym, ok := s.Lookup(name)
	if !ok {
		return nil, false
	}
	return sym.Value, true
}

// Symbols returns this scope's own symbols sorted by name.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.symbols))
	for _, sym := range s.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Depth returns the number of ancestors of s.
func (s *Scope) Depth() int {
	depth := 0
	for cur := s.parent; cur != nil; cur = cur.parent {
		depth++
	}
	return depth
}
