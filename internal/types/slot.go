package types

import (
	"errors"
	"fmt"
)

// Flavor is a slot's mutability discipline.
type Flavor int

const (
	FlavorJust Flavor = iota
	FlavorVar
	FlavorConst
	FlavorCurrently
	FlavorVarOrConst
	FlavorVarOrCurrently
)

func (f Flavor) String() string {
	switch f {
	case FlavorJust:
		return "just"
	case FlavorVar:
		return "var"
	case FlavorConst:
		return "const"
	case FlavorCurrently:
		return "currently"
	case FlavorVarOrConst:
		return "var-or-const"
	case FlavorVarOrCurrently:
		return "var-or-currently"
	default:
		return "?"
	}
}

// flavorJoin is the join table from spec §4.2. Entries not explicitly
// given by the two-flavor-Or rows (Currently/VarOrConst/VarOrCurrently
// combinations) are filled in by the same pattern: a flavor's self-join
// promotes to its "Or" partner exactly where Var's self-join does (Const
// stays idempotent; Var and Currently do not), and mixing two different
// "Or" families defaults to VarOrConst, the broader of the two.
var flavorJoin = map[[2]Flavor]Flavor{
	{FlavorJust, FlavorJust}:      FlavorJust,
	{FlavorJust, FlavorVar}:       FlavorVarOrConst,
	{FlavorJust, FlavorConst}:     FlavorConst,
	{FlavorJust, FlavorCurrently}: FlavorVarOrCurrently,
	{FlavorJust, FlavorVarOrConst}:      FlavorVarOrConst,
	{FlavorJust, FlavorVarOrCurrently}:  FlavorVarOrCurrently,

	{FlavorVar, FlavorVar}:       FlavorVarOrConst,
	{FlavorVar, FlavorConst}:     FlavorConst,
	{FlavorVar, FlavorCurrently}: FlavorVarOrCurrently,
	{FlavorVar, FlavorVarOrConst}:     FlavorVarOrConst,
	{FlavorVar, FlavorVarOrCurrently}: FlavorVarOrCurrently,

	{FlavorConst, FlavorConst}:     FlavorConst,
	{FlavorConst, FlavorCurrently}: FlavorVarOrConst,
	{FlavorConst, FlavorVarOrConst}:     FlavorVarOrConst,
	{FlavorConst, FlavorVarOrCurrently}: FlavorVarOrConst,

	{FlavorCurrently, FlavorCurrently}:     FlavorVarOrCurrently,
	{FlavorCurrently, FlavorVarOrConst}:     FlavorVarOrConst,
	{FlavorCurrently, FlavorVarOrCurrently}: FlavorVarOrCurrently,

	{FlavorVarOrConst, FlavorVarOrConst}:     FlavorVarOrConst,
	{FlavorVarOrConst, FlavorVarOrCurrently}: FlavorVarOrConst,

	{FlavorVarOrCurrently, FlavorVarOrCurrently}: FlavorVarOrCurrently,
}

func joinFlavor(a, b Flavor) Flavor {
	if r, ok := flavorJoin[[2]Flavor{a, b}]; ok {
		return r
	}
	if r, ok := flavorJoin[[2]Flavor{b, a}]; ok {
		return r
	}
	panic(fmt.Sprintf("types: no join entry for flavors %s, %s", a, b))
}

// Slot is a typed cell with a mutability flavor. VarOrConst and
// VarOrCurrently carry a Mark recording the still-undetermined choice
// between their two component flavors.
type Slot struct {
	Flavor Flavor
	Type   T
	Mark   Mark // meaningful only when Flavor is VarOrConst/VarOrCurrently
}

func JustSlot(t T) Slot      { return Slot{Flavor: FlavorJust, Type: t} }
func VarSlot(t T) Slot       { return Slot{Flavor: FlavorVar, Type: t} }
func ConstSlot(t T) Slot     { return Slot{Flavor: FlavorConst, Type: t} }
func CurrentlySlot(t T) Slot { return Slot{Flavor: FlavorCurrently, Type: t} }

func VarOrConstSlot(t T, m Mark) Slot {
	return Slot{Flavor: FlavorVarOrConst, Type: t, Mark: m}
}
func VarOrCurrentlySlot(t T, m Mark) Slot {
	return Slot{Flavor: FlavorVarOrCurrently, Type: t, Mark: m}
}

func (s Slot) String() string {
	return fmt.Sprintf("%s(%s)", s.Flavor, s.Type)
}

// Union joins two slots: the flavor joins per the table above, and the
// wrapped type joins via T's own lattice union. When the resulting
// flavor is one of the "Or" flavors and neither input already carried a
// matching mark, a fresh one is allocated.
func (s Slot) Union(ctx *TypeContext, o Slot) (Slot, error) {
	flavor := joinFlavor(s.Flavor, o.Flavor)
	ty, err := s.Type.Union(ctx, o.Type)
	if err != nil {
		return Slot{}, err
	}
	switch flavor {
	case FlavorVarOrConst, FlavorVarOrCurrently:
		mark, ok := pickMark(s, o, flavor)
		if !ok && ctx != nil {
			mark = ctx.Marks.Gen()
		}
		return Slot{Flavor: flavor, Type: ty, Mark: mark}, nil
	default:
		return Slot{Flavor: flavor, Type: ty}, nil
	}
}

// pickMark returns the mark already carried by whichever input slot's
// flavor matches the joined flavor, so a VarOrConst/VarOrCurrently slot
// keeps its union-find identity across a Union instead of being handed a
// fresh, unrelated mark. Mark 0 is a valid allocated id (the first mark
// any MarkContext ever hands out), so "no match" is reported via the
// bool, never by a zero-value sentinel.
func pickMark(a, b Slot, flavor Flavor) (Mark, bool) {
	if a.Flavor == flavor {
		return a.Mark, true
	}
	if b.Flavor == flavor {
		return b.Mark, true
	}
	return 0, false
}

var errIncompatibleFlavor = errors.New("types: incompatible slot flavors")

// AssertSub checks s ≤ o: Var cells require invariant (assert_eq)
// agreement since both read and write must match; Const/Just cells
// compare covariantly; VarOrConst/VarOrCurrently delegate to their Mark.
func (s Slot) AssertSub(ctx *TypeContext, o Slot) error {
	switch {
	case o.Flavor == FlavorVarOrConst || o.Flavor == FlavorVarOrCurrently:
		return s.assertSubMarked(ctx, o)
	case s.Flavor == FlavorVarOrConst || s.Flavor == FlavorVarOrCurrently:
		return s.assertSubMarked(ctx, o)
	case s.Flavor == FlavorVar && o.Flavor == FlavorVar:
		return s.Type.AssertEq(ctx, o.Type)
	case s.Flavor == FlavorCurrently && o.Flavor == FlavorCurrently:
		return s.Type.AssertEq(ctx, o.Type)
	case o.Flavor == FlavorConst && (s.Flavor == FlavorJust || s.Flavor == FlavorVar ||
		s.Flavor == FlavorConst || s.Flavor == FlavorCurrently):
		return s.Type.AssertSub(ctx, o.Type)
	case s.Flavor == FlavorJust && o.Flavor == FlavorJust:
		return s.Type.AssertSub(ctx, o.Type)
	default:
		return errIncompatibleFlavor
	}
}

func (s Slot) assertSubMarked(ctx *TypeContext, o Slot) error {
	choice := func(slot Slot) FlavorChoice {
		switch slot.Flavor {
		case FlavorVarOrConst, FlavorVarOrCurrently:
			return ctx.Marks.Choice(slot.Mark)
		case FlavorVar:
			return ChoiceVar
		case FlavorConst:
			return ChoiceConst
		case FlavorCurrently:
			return ChoiceCurrently
		default:
			return ChoiceUnresolved
		}
	}
	if s.Flavor == FlavorVarOrConst || s.Flavor == FlavorVarOrCurrently {
		if err := ctx.Marks.AssertChoice(s.Mark, preferredChoice(choice(o))); err != nil {
			return err
		}
	}
	if o.Flavor == FlavorVarOrConst || o.Flavor == FlavorVarOrCurrently {
		if err := ctx.Marks.AssertChoice(o.Mark, preferredChoice(choice(s))); err != nil {
			return err
		}
	}
	return s.Type.AssertSub(ctx, o.Type)
}

func preferredChoice(c FlavorChoice) FlavorChoice {
	if c == ChoiceUnresolved {
		return ChoiceConst
	}
	return c
}

// AssertEq checks that both slots have the same flavor (unifying the
// marks of two VarOrConst/VarOrCurrently slots) and equal wrapped types.
func (s Slot) AssertEq(ctx *TypeContext, o Slot) error {
	if s.Flavor != o.Flavor {
		return errIncompatibleFlavor
	}
	if (s.Flavor == FlavorVarOrConst || s.Flavor == FlavorVarOrCurrently) && s.Mark != o.Mark {
		if err := ctx.Marks.Unify(s.Mark, o.Mark); err != nil {
			return err
		}
	}
	return s.Type.AssertEq(ctx, o.Type)
}

// Normalize normalizes the wrapped type. A wrapped type that normalizes
// to T::None stays in the slot (a Slot has no "absent" representation of
// its own — T::None is a valid wrapped type, not a missing slot).
func (s Slot) Normalize(ctx *TypeContext) Slot {
	s.Type = s.Type.Normalize(ctx)
	return s
}
