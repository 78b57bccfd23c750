// Package builtin provides the functions akorn programs can call by name.
package builtin

import "github.com/akorn-lang/akorn/internal/runtime"

// Func implements one builtin. Builtins without a result return
// runtime.None.
type Func func(args []runtime.Value) (runtime.Value, error)

// Table maps builtin names to their implementations.
type Table map[string]Func

// Without returns a copy of t lacking the given names.
func (t Table) Without(names ...string) Table {
	out := make(Table, len(t))
	for name, fn := range t {
		out[name] = fn
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// Signature is the static shape of a builtin.
type Signature struct {
	// Returns is KindNone for builtins that produce no value.
	Returns runtime.Kind
	MinArgs int
	// MaxArgs is -1 for variadic builtins.
	MaxArgs int
	// Param is the kind every argument must have, or KindInvalid for any.
	Param runtime.Kind
}

// Signatures describes every builtin the console table implements.
var Signatures = map[string]Signature{
	"write":      {Returns: runtime.KindNone, MinArgs: 0, MaxArgs: -1, Param: runtime.KindInvalid},
	"writeline":  {Returns: runtime.KindNone, MinArgs: 0, MaxArgs: -1, Param: runtime.KindInvalid},
	"readInt":    {Returns: runtime.KindInt, MinArgs: 0, MaxArgs: 1, Param: runtime.KindString},
	"readFloat":  {Returns: runtime.KindFloat, MinArgs: 0, MaxArgs: 1, Param: runtime.KindString},
	"readString": {Returns: runtime.KindString, MinArgs: 0, MaxArgs: 1, Param: runtime.KindString},
	"readBool":   {Returns: runtime.KindBool, MinArgs: 3, MaxArgs: 3, Param: runtime.KindString},
}

// SignaturesFor returns the signatures of the builtins present in t.
func SignaturesFor(t Table) map[string]Signature {
	out := make(map[string]Signature, len(t))
	for name := range t {
		if sig, ok := Signatures[name]; ok {
			out[name] = sig
		}
	}
	return out
}
