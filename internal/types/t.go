package types

import (
	"fmt"

	"github.com/funvibe/kailua/internal/config"
	"github.com/funvibe/kailua/internal/kind"
)

// TVar is a type-variable handle. Its bounds live in the TypeContext
// that issued it (see context.go); the handle itself is just an id.
type TVar uint32

func (v TVar) String() string {
	if config.IsTestMode {
		return "t?"
	}
	return fmt.Sprintf("t%d", v)
}

// TKind discriminates the case a T holds (spec §3's "Type term T").
type TKind int

const (
	TDynamic TKind = iota
	TNone
	TNil
	TBoolean
	TTrue
	TFalse
	TNumbers
	TStrings
	TTables
	TFunctions
	TTVar
	TBuiltin
	TUnion
)

// T is the checker's tagged-variant type term. Exactly one payload field
// is meaningful, selected by Kind.
type T struct {
	Kind TKind

	NumbersVal   Numbers
	StringsVal   Strings
	TablesVal    Tables
	FunctionsVal Functions
	TVarID       TVar

	BuiltinTag   Tag
	BuiltinInner *T

	UnionVal *Union
}

func Dynamic() T  { return T{Kind: TDynamic} }
func None() T     { return T{Kind: TNone} }
func Nil() T      { return T{Kind: TNil} }
func Boolean() T  { return T{Kind: TBoolean} }
func True() T     { return T{Kind: TTrue} }
func False() T    { return T{Kind: TFalse} }

func NumbersT(n Numbers) T     { return T{Kind: TNumbers, NumbersVal: n} }
func StringsT(s Strings) T     { return T{Kind: TStrings, StringsVal: s} }
func TablesT(tb Tables) T      { return T{Kind: TTables, TablesVal: tb} }
func FunctionsT(f Functions) T { return T{Kind: TFunctions, FunctionsVal: f} }
func TVarT(v TVar) T           { return T{Kind: TTVar, TVarID: v} }

func BuiltinT(tag Tag, inner T) T {
	if inner.Kind == TBuiltin {
		panic("types: Builtin must not nest inside Builtin")
	}
	return T{Kind: TBuiltin, BuiltinTag: tag, BuiltinInner: &inner}
}

func UnionT(u Union) T { return T{Kind: TUnion, UnionVal: &u} }

// Combinator helpers mirroring T::number()/int()/tuple()/record()/etc.
func Number() T                 { return NumbersT(NumbersAll()) }
func Integer() T                { return NumbersT(NumbersInt()) }
func Int(v int32) T             { return NumbersT(NumbersLit(v)) }
func Ints(vs ...int32) T        { return NumbersT(NumbersSet(vs...)) }
func Str(v string) T            { return StringsT(StringsLit(v)) }
func Strs(vs ...string) T       { return StringsT(StringsSet(vs...)) }
func AnyString() T              { return StringsT(StringsAll()) }
func EmptyTable() T             { return TablesT(TablesEmpty()) }
func AnyTable() T                { return TablesT(TablesAll()) }
func Tuple(slots ...Slot) T     { return TablesT(TablesTuple(slots...)) }
func Record(fields map[string]Slot) T { return TablesT(TablesRecord(fields)) }
func Array(elem Slot) T         { return TablesT(TablesArray(elem)) }
func MapT(key T, val Slot) T    { return TablesT(TablesMap(key, val)) }
func Func(f Function) T         { return FunctionsT(FunctionsSimple(f)) }
func AnyFunction() T            { return FunctionsT(FunctionsAll()) }

// FromKind lifts a parser-level Kind into the full lattice type T
// (spec §3 "Lifecycle": `T::from(Kind)`).
func FromKind(k kind.Kind) T {
	switch k.Tag {
	case kind.Dynamic:
		return Dynamic()
	case kind.Nil:
		return Nil()
	case kind.Boolean:
		return Boolean()
	case kind.BooleanLit:
		if k.BoolValue {
			return True()
		}
		return False()
	case kind.Number:
		return Number()
	case kind.Integer:
		return Integer()
	case kind.IntegerLit:
		return Int(k.IntValue)
	case kind.String:
		return AnyString()
	case kind.StringLit:
		return Str(k.StrValue)
	case kind.Table:
		return AnyTable()
	case kind.Function:
		return AnyFunction()
	case kind.Union:
		parts := make([]T, len(k.UnionParts))
		for i, p := range k.UnionParts {
			parts[i] = FromKind(p)
		}
		out := parts[0]
		for _, p := range parts[1:] {
			var err error
			out, err = out.Union(nil, p)
			if err != nil {
				return Dynamic()
			}
		}
		return out
	default:
		return Dynamic()
	}
}

// Flags reports the primitive families t inhabits.
func (t T) Flags() Flags {
	switch t.Kind {
	case TDynamic:
		return FlagDynamic
	case TNone:
		return FlagNone
	case TNil:
		return FlagNil
	case TBoolean, TTrue, TFalse:
		return FlagBoolean
	case TNumbers:
		if t.NumbersVal.Kind == NumInt || t.NumbersVal.Kind == NumOne || t.NumbersVal.Kind == NumSome {
			return FlagNumber | FlagInteger
		}
		return FlagNumber
	case TStrings:
		return FlagString
	case TTables:
		return FlagTable
	case TFunctions:
		return FlagFunction
	case TTVar:
		return FlagTVar
	case TBuiltin:
		return t.BuiltinInner.Flags()
	case TUnion:
		var f Flags
		for _, m := range t.UnionVal.populated() {
			f = f.Union(m.Flags())
		}
		return f
	default:
		return FlagNone
	}
}

func (t T) String() string {
	switch t.Kind {
	case TDynamic:
		return "?"
	case TNone:
		return "none"
	case TNil:
		return "nil"
	case TBoolean:
		return "boolean"
	case TTrue:
		return "true"
	case TFalse:
		return "false"
	case TNumbers:
		return t.NumbersVal.String()
	case TStrings:
		return t.StringsVal.String()
	case TTables:
		return t.TablesVal.String()
	case TFunctions:
		return t.FunctionsVal.String()
	case TTVar:
		return t.TVarID.String()
	case TBuiltin:
		return fmt.Sprintf("[%s] %s", t.BuiltinTag.Name(), t.BuiltinInner)
	case TUnion:
		return t.UnionVal.String()
	default:
		return "?"
	}
}

func stripTag(t T) T {
	if t.Kind == TBuiltin {
		return *t.BuiltinInner
	}
	return t
}

// decompose splits a T into its constituent members for union-vs-single
// comparisons: a bare shape decomposes to itself; a Union decomposes to
// its populated dimensions (booleans as separate True/False members).
func decompose(t T) []T {
	if t.Kind == TUnion {
		return t.UnionVal.populated()
	}
	return []T{t}
}

// Union implements the T-level lattice dispatch skeleton (spec §4.3)
// for the join operation.
func (t T) Union(ctx *TypeContext, o T) (T, error) {
	if t.Kind == TBuiltin && o.Kind == TBuiltin && t.BuiltinTag == o.BuiltinTag {
		inner, err := t.BuiltinInner.Union(ctx, *o.BuiltinInner)
		if err != nil {
			return T{}, err
		}
		return BuiltinT(t.BuiltinTag, inner), nil
	}
	a, b := stripTag(t), stripTag(o)

	if a.Kind == TDynamic || b.Kind == TDynamic {
		return Dynamic(), nil
	}
	if a.Kind == TNone {
		return b, nil
	}
	if b.Kind == TNone {
		return a, nil
	}
	if a.Kind == TTVar && b.Kind == TTVar && a.TVarID == b.TVarID {
		return a, nil
	}

	ua, ub := single(a), single(b)
	merged, err := ua.MergeWith(ctx, ub)
	if err != nil {
		return T{}, err
	}
	return merged.Simplify(), nil
}

// AssertSub implements the subtyping half of the dispatch skeleton.
func (t T) AssertSub(ctx *TypeContext, o T) error {
	if t.Kind == TBuiltin && o.Kind == TBuiltin && t.BuiltinTag == o.BuiltinTag {
		return t.BuiltinInner.AssertSub(ctx, *o.BuiltinInner)
	}
	a, b := stripTag(t), stripTag(o)

	if a.Kind == TDynamic || b.Kind == TDynamic {
		return nil
	}
	if a.Kind == TNone {
		return nil
	}
	if b.Kind == TNone {
		return &TypeMismatchError{Got: a, Expected: b, Op: OpSub}
	}

	if a.Kind == TTVar && b.Kind == TTVar {
		return ctx.AssertTVarSubTVar(a.TVarID, b.TVarID)
	}
	if a.Kind == TTVar {
		return ctx.AssertTVarSub(a.TVarID, b)
	}
	if b.Kind == TTVar {
		return ctx.AssertTVarSup(b.TVarID, a)
	}

	if a.Kind == TUnion {
		for _, member := range decompose(a) {
			if err := member.AssertSub(ctx, b); err != nil {
				return err
			}
		}
		return nil
	}
	if b.Kind == TUnion {
		// Boolean has no single member of its own in canonical form — it
		// is represented as the pair of independent True/False presence
		// bits (union.go) — so it is covered iff both bits are set, not
		// by looking for a same-Kind member.
		if a.Kind == TBoolean {
			if b.UnionVal.HasTrue && b.UnionVal.HasFalse {
				return nil
			}
			return &TypeMismatchError{Got: a, Expected: b, Op: OpSub}
		}
		var lastErr error
		for _, member := range decompose(b) {
			if member.Kind != a.Kind && member.Kind != TTVar {
				continue
			}
			if err := a.AssertSub(ctx, member); err == nil {
				return nil
			} else {
				lastErr = err
			}
		}
		if lastErr == nil {
			lastErr = &TypeMismatchError{Got: a, Expected: b, Op: OpSub}
		}
		return lastErr
	}

	return assertSubLike(ctx, a, b)
}

func assertSubLike(ctx *TypeContext, a, b T) error {
	switch {
	case a.Kind == TNil && b.Kind == TNil:
		return nil
	case a.Kind == TTrue && (b.Kind == TTrue || b.Kind == TBoolean):
		return nil
	case a.Kind == TFalse && (b.Kind == TFalse || b.Kind == TBoolean):
		return nil
	case a.Kind == TBoolean && b.Kind == TBoolean:
		return nil
	case a.Kind == TNumbers && b.Kind == TNumbers:
		return a.NumbersVal.AssertSub(b.NumbersVal)
	case a.Kind == TStrings && b.Kind == TStrings:
		return a.StringsVal.AssertSub(b.StringsVal)
	case a.Kind == TTables && b.Kind == TTables:
		return a.TablesVal.AssertSub(ctx, b.TablesVal)
	case a.Kind == TFunctions && b.Kind == TFunctions:
		return a.FunctionsVal.AssertSub(ctx, b.FunctionsVal)
	default:
		return &TypeMismatchError{Got: a, Expected: b, Op: OpSub}
	}
}

// AssertEq implements the equality half of the dispatch skeleton.
func (t T) AssertEq(ctx *TypeContext, o T) error {
	if t.Kind == TBuiltin && o.Kind == TBuiltin && t.BuiltinTag == o.BuiltinTag {
		return t.BuiltinInner.AssertEq(ctx, *o.BuiltinInner)
	}
	a, b := stripTag(t), stripTag(o)

	if a.Kind == TDynamic || b.Kind == TDynamic {
		return nil
	}
	if a.Kind == TNone && b.Kind == TNone {
		return nil
	}

	if a.Kind == TTVar && b.Kind == TTVar {
		return ctx.AssertTVarEqTVar(a.TVarID, b.TVarID)
	}
	if a.Kind == TTVar {
		return ctx.AssertTVarEq(a.TVarID, b)
	}
	if b.Kind == TTVar {
		return ctx.AssertTVarEq(b.TVarID, a)
	}

	// §9: assert_eq between Union and non-Union decomposes the union
	// into its single populated family and recurses, failing if more
	// than one family is populated.
	if a.Kind == TUnion || b.Kind == TUnion {
		return assertEqUnion(ctx, a, b)
	}

	switch {
	case a.Kind == TNil && b.Kind == TNil:
		return nil
	case a.Kind == TTrue && b.Kind == TTrue:
		return nil
	case a.Kind == TFalse && b.Kind == TFalse:
		return nil
	case a.Kind == TBoolean && b.Kind == TBoolean:
		return nil
	case a.Kind == TNumbers && b.Kind == TNumbers:
		return a.NumbersVal.AssertEq(b.NumbersVal)
	case a.Kind == TStrings && b.Kind == TStrings:
		return a.StringsVal.AssertEq(b.StringsVal)
	case a.Kind == TTables && b.Kind == TTables:
		return a.TablesVal.AssertEq(ctx, b.TablesVal)
	case a.Kind == TFunctions && b.Kind == TFunctions:
		return a.FunctionsVal.AssertEq(ctx, b.FunctionsVal)
	default:
		return &TypeMismatchError{Got: a, Expected: b, Op: OpEq}
	}
}

func assertEqUnion(ctx *TypeContext, a, b T) error {
	if a.Kind == TUnion && b.Kind == TUnion {
		ma, mb := a.UnionVal.populated(), b.UnionVal.populated()
		if len(ma) != len(mb) {
			return &TypeMismatchError{Got: a, Expected: b, Op: OpEq}
		}
		for _, x := range ma {
			ok := false
			for _, y := range mb {
				if x.AssertEq(ctx, y) == nil {
					ok = true
					break
				}
			}
			if !ok {
				return &TypeMismatchError{Got: a, Expected: b, Op: OpEq}
			}
		}
		return nil
	}
	union, single := a, b
	if b.Kind == TUnion {
		union, single = b, a
	}
	members := union.UnionVal.populated()
	if len(members) != 1 {
		return &TypeMismatchError{Got: a, Expected: b, Op: OpEq}
	}
	return members[0].AssertEq(ctx, single)
}

// Normalize implements spec §4.5/§9's fixpoint requirement: shape-level
// normalization followed by re-simplifying any union that results.
func (t T) Normalize(ctx *TypeContext) T {
	switch t.Kind {
	case TNumbers:
		n, ok := t.NumbersVal.Normalize()
		if !ok {
			return None()
		}
		return NumbersT(n)
	case TStrings:
		s, ok := t.StringsVal.Normalize()
		if !ok {
			return None()
		}
		return StringsT(s)
	case TTables:
		return TablesT(t.TablesVal.Normalize(ctx))
	case TFunctions:
		return FunctionsT(t.FunctionsVal.Normalize(ctx))
	case TBuiltin:
		inner := t.BuiltinInner.Normalize(ctx)
		return BuiltinT(t.BuiltinTag, inner)
	case TUnion:
		members := t.UnionVal.populated()
		out := None()
		for _, m := range members {
			var err error
			out, err = out.Union(ctx, m.Normalize(ctx))
			if err != nil {
				return out
			}
		}
		return out
	default:
		return t
	}
}
