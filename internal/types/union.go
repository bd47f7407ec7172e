package types

import "strings"

// Union is the canonical join form (spec §3): at most one member per
// primitive family, plus independent boolean/nil presence bits. A
// T::Union is only ever constructed through Simplify, never by hand
// (spec §9 "Union canonical form vs. T variant").
type Union struct {
	HasNil   bool
	HasTrue  bool
	HasFalse bool

	Numbers   *Numbers
	Strings   *Strings
	Tables    *Tables
	Functions *Functions
	TVarID    *TVar
}

// single builds a one-member Union from any non-Dynamic, non-None,
// non-Builtin T; a T that is already a Union yields its own Union value.
// Callers are expected to have already stripped tags and absorbed
// Dynamic/None before calling this.
func single(t T) Union {
	switch t.Kind {
	case TNil:
		return Union{HasNil: true}
	case TTrue:
		return Union{HasTrue: true}
	case TFalse:
		return Union{HasFalse: true}
	case TBoolean:
		return Union{HasTrue: true, HasFalse: true}
	case TNumbers:
		n := t.NumbersVal
		return Union{Numbers: &n}
	case TStrings:
		s := t.StringsVal
		return Union{Strings: &s}
	case TTables:
		tb := t.TablesVal
		return Union{Tables: &tb}
	case TFunctions:
		f := t.FunctionsVal
		return Union{Functions: &f}
	case TTVar:
		v := t.TVarID
		return Union{TVarID: &v}
	case TUnion:
		return *t.UnionVal
	default:
		panic("types: single() called on a Dynamic/None/Builtin T")
	}
}

// MergeWith joins u and o field by field — the per-family merge spec §3
// guarantees is always possible once both sides are in canonical form.
func (u Union) MergeWith(ctx *TypeContext, o Union) (Union, error) {
	out := Union{
		HasNil:   u.HasNil || o.HasNil,
		HasTrue:  u.HasTrue || o.HasTrue,
		HasFalse: u.HasFalse || o.HasFalse,
	}
	switch {
	case u.Numbers != nil && o.Numbers != nil:
		n := u.Numbers.Union(*o.Numbers)
		out.Numbers = &n
	case u.Numbers != nil:
		out.Numbers = u.Numbers
	case o.Numbers != nil:
		out.Numbers = o.Numbers
	}
	switch {
	case u.Strings != nil && o.Strings != nil:
		s := u.Strings.Union(*o.Strings)
		out.Strings = &s
	case u.Strings != nil:
		out.Strings = u.Strings
	case o.Strings != nil:
		out.Strings = o.Strings
	}
	switch {
	case u.Tables != nil && o.Tables != nil:
		tb, err := u.Tables.Union(ctx, *o.Tables)
		if err != nil {
			return Union{}, err
		}
		out.Tables = &tb
	case u.Tables != nil:
		out.Tables = u.Tables
	case o.Tables != nil:
		out.Tables = o.Tables
	}
	switch {
	case u.Functions != nil && o.Functions != nil:
		f, err := u.Functions.Union(ctx, *o.Functions)
		if err != nil {
			return Union{}, err
		}
		out.Functions = &f
	case u.Functions != nil:
		out.Functions = u.Functions
	case o.Functions != nil:
		out.Functions = o.Functions
	}
	switch {
	case u.TVarID != nil && o.TVarID != nil:
		a, b := *u.TVarID, *o.TVarID
		if a != b && ctx != nil {
			// Union has no slot for two distinct tvars; force them
			// equivalent via a pair of sub-edges rather than lose one.
			if err := ctx.AssertTVarSubTVar(a, b); err != nil {
				return Union{}, err
			}
			if err := ctx.AssertTVarSubTVar(b, a); err != nil {
				return Union{}, err
			}
		}
		out.TVarID = u.TVarID
	case u.TVarID != nil:
		out.TVarID = u.TVarID
	case o.TVarID != nil:
		out.TVarID = o.TVarID
	}
	return out, nil
}

// populated returns the member list this union denotes, one T per
// occupied dimension (booleans decomposed into True/False separately —
// see t.go's decompose for why this is safe for lattice comparisons).
func (u Union) populated() []T {
	var members []T
	if u.HasNil {
		members = append(members, Nil())
	}
	if u.HasTrue {
		members = append(members, True())
	}
	if u.HasFalse {
		members = append(members, False())
	}
	if u.Numbers != nil {
		members = append(members, NumbersT(*u.Numbers))
	}
	if u.Strings != nil {
		members = append(members, StringsT(*u.Strings))
	}
	if u.Tables != nil {
		members = append(members, TablesT(*u.Tables))
	}
	if u.Functions != nil {
		members = append(members, FunctionsT(*u.Functions))
	}
	if u.TVarID != nil {
		members = append(members, TVarT(*u.TVarID))
	}
	return members
}

// Simplify implements spec §4.5: a union with exactly one populated
// dimension collapses to that dimension's bare T (or Boolean when both
// true and false are set and nothing else is), otherwise it is returned
// as a genuine T::Union.
func (u Union) Simplify() T {
	dims := 0
	if u.HasNil {
		dims++
	}
	boolDim := u.HasTrue || u.HasFalse
	if boolDim {
		dims++
	}
	if u.Numbers != nil {
		dims++
	}
	if u.Strings != nil {
		dims++
	}
	if u.Tables != nil {
		dims++
	}
	if u.Functions != nil {
		dims++
	}
	if u.TVarID != nil {
		dims++
	}
	switch {
	case dims == 0:
		return None()
	case dims == 1 && u.HasNil:
		return Nil()
	case dims == 1 && boolDim:
		switch {
		case u.HasTrue && u.HasFalse:
			return Boolean()
		case u.HasTrue:
			return True()
		default:
			return False()
		}
	case dims == 1 && u.Numbers != nil:
		return NumbersT(*u.Numbers)
	case dims == 1 && u.Strings != nil:
		return StringsT(*u.Strings)
	case dims == 1 && u.Tables != nil:
		return TablesT(*u.Tables)
	case dims == 1 && u.Functions != nil:
		return FunctionsT(*u.Functions)
	case dims == 1 && u.TVarID != nil:
		return TVarT(*u.TVarID)
	default:
		return UnionT(u)
	}
}

func (u Union) String() string {
	parts := make([]string, 0, 8)
	if u.HasNil {
		parts = append(parts, "nil")
	}
	if u.HasTrue && u.HasFalse {
		parts = append(parts, "boolean")
	} else if u.HasTrue {
		parts = append(parts, "true")
	} else if u.HasFalse {
		parts = append(parts, "false")
	}
	if u.Numbers != nil {
		parts = append(parts, u.Numbers.String())
	}
	if u.Strings != nil {
		parts = append(parts, u.Strings.String())
	}
	if u.Tables != nil {
		parts = append(parts, u.Tables.String())
	}
	if u.Functions != nil {
		parts = append(parts, u.Functions.String())
	}
	if u.TVarID != nil {
		parts = append(parts, u.TVarID.String())
	}
	return strings.Join(parts, "|")
}
