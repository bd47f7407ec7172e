package types

import "fmt"

// FunctionKind discriminates the case a Functions value holds.
type FunctionKind int

const (
	FuncAll    FunctionKind = iota
	FuncSimple
)

// Function is a concrete function shape: a parameter list and a return
// list, each a sequence of T (no per-argument slot flavor — functions
// are called, not assigned into).
type Function struct {
	Params  []T
	Returns []T
}

// Functions is the function primitive family: All, or a single concrete
// Function shape.
type Functions struct {
	Kind   FunctionKind
	Simple *Function
}

func FunctionsAll() Functions { return Functions{Kind: FuncAll} }
func FunctionsSimple(f Function) Functions {
	return Functions{Kind: FuncSimple, Simple: &f}
}

func (f Functions) String() string {
	if f.Kind == FuncAll {
		return "function"
	}
	return fmt.Sprintf("function(%v) -> %v", f.Simple.Params, f.Simple.Returns)
}

// Union implements spec §4.1's function union rule: All absorbs; two
// Simple forms union only when arities match and every parameter/return
// position is pairwise unifiable, else the join widens to All.
func (f Functions) Union(ctx *TypeContext, o Functions) (Functions, error) {
	if f.Kind == FuncAll || o.Kind == FuncAll {
		return FunctionsAll(), nil
	}
	if len(f.Simple.Params) != len(o.Simple.Params) || len(f.Simple.Returns) != len(o.Simple.Returns) {
		return FunctionsAll(), nil
	}
	params := make([]T, len(f.Simple.Params))
	for i := range params {
		p, err := f.Simple.Params[i].Union(ctx, o.Simple.Params[i])
		if err != nil {
			return FunctionsAll(), nil
		}
		params[i] = p
	}
	returns := make([]T, len(f.Simple.Returns))
	for i := range returns {
		r, err := f.Simple.Returns[i].Union(ctx, o.Simple.Returns[i])
		if err != nil {
			return FunctionsAll(), nil
		}
		returns[i] = r
	}
	return FunctionsSimple(Function{Params: params, Returns: returns}), nil
}

// AssertSub checks f ≤ o: contravariant in parameters, covariant in
// returns, the standard function-subtyping rule.
func (f Functions) AssertSub(ctx *TypeContext, o Functions) error {
	if o.Kind == FuncAll {
		return nil
	}
	if f.Kind == FuncAll {
		return &TypeMismatchError{Got: f, Expected: o, Op: OpSub}
	}
	if len(f.Simple.Params) != len(o.Simple.Params) || len(f.Simple.Returns) != len(o.Simple.Returns) {
		return &TypeMismatchError{Got: f, Expected: o, Op: OpSub}
	}
	for i := range f.Simple.Params {
		// contravariant: o's param must be a subtype of f's param.
		if err := o.Simple.Params[i].AssertSub(ctx, f.Simple.Params[i]); err != nil {
			return err
		}
	}
	for i := range f.Simple.Returns {
		if err := f.Simple.Returns[i].AssertSub(ctx, o.Simple.Returns[i]); err != nil {
			return err
		}
	}
	return nil
}

// AssertEq checks structural equality.
func (f Functions) AssertEq(ctx *TypeContext, o Functions) error {
	if f.Kind != o.Kind {
		return &TypeMismatchError{Got: f, Expected: o, Op: OpEq}
	}
	if f.Kind == FuncAll {
		return nil
	}
	if len(f.Simple.Params) != len(o.Simple.Params) || len(f.Simple.Returns) != len(o.Simple.Returns) {
		return &TypeMismatchError{Got: f, Expected: o, Op: OpEq}
	}
	for i := range f.Simple.Params {
		if err := f.Simple.Params[i].AssertEq(ctx, o.Simple.Params[i]); err != nil {
			return err
		}
	}
	for i := range f.Simple.Returns {
		if err := f.Simple.Returns[i].AssertEq(ctx, o.Simple.Returns[i]); err != nil {
			return err
		}
	}
	return nil
}

// Normalize recursively normalizes parameter and return types.
func (f Functions) Normalize(ctx *TypeContext) Functions {
	if f.Kind == FuncAll {
		return f
	}
	params := make([]T, len(f.Simple.Params))
	for i, p := range f.Simple.Params {
		params[i] = p.Normalize(ctx)
	}
	returns := make([]T, len(f.Simple.Returns))
	for i, r := range f.Simple.Returns {
		returns[i] = r.Normalize(ctx)
	}
	return FunctionsSimple(Function{Params: params, Returns: returns})
}
