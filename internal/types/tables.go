package types

import (
	"fmt"
	"sort"
)

// TableKind discriminates the case a Tables value holds. Tuple, Record,
// Array and Map are mutually exclusive shapes that do not subsume each
// other under union (spec §3 invariants): joining across them collapses
// to All.
type TableKind int

const (
	TabAll   TableKind = iota
	TabEmpty
	TabTuple
	TabRecord
	TabArray
	TabMap
)

// Tables is the table primitive family.
type Tables struct {
	Kind TableKind

	Tuple  []Slot          // TabTuple: positional
	Record map[string]Slot // TabRecord: bytestring-keyed
	Array  *Slot           // TabArray: positive-integer-keyed, uniform
	MapKey *T              // TabMap
	MapVal *Slot           // TabMap
}

func TablesAll() Tables   { return Tables{Kind: TabAll} }
func TablesEmpty() Tables { return Tables{Kind: TabEmpty} }
func TablesTuple(slots ...Slot) Tables {
	return Tables{Kind: TabTuple, Tuple: slots}
}
func TablesRecord(fields map[string]Slot) Tables {
	return Tables{Kind: TabRecord, Record: fields}
}
func TablesArray(elem Slot) Tables {
	return Tables{Kind: TabArray, Array: &elem}
}
func TablesMap(key T, val Slot) Tables {
	return Tables{Kind: TabMap, MapKey: &key, MapVal: &val}
}

func (t Tables) String() string {
	switch t.Kind {
	case TabAll:
		return "table"
	case TabEmpty:
		return "{}"
	case TabTuple:
		return fmt.Sprintf("tuple%v", t.Tuple)
	case TabRecord:
		keys := make([]string, 0, len(t.Record))
		for k := range t.Record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Sprintf("record%v", keys)
	case TabArray:
		return fmt.Sprintf("array(%s)", t.Array)
	default:
		return fmt.Sprintf("map(%s, %s)", t.MapKey, t.MapVal)
	}
}

// Union implements the table join rules of spec §4.1. Equal shapes merge
// positionally; Empty is the identity; crossing shapes (or either side
// being All) collapses to All.
func (t Tables) Union(ctx *TypeContext, o Tables) (Tables, error) {
	if t.Kind == TabAll || o.Kind == TabAll {
		return TablesAll(), nil
	}
	if t.Kind == TabEmpty {
		return o, nil
	}
	if o.Kind == TabEmpty {
		return t, nil
	}
	if t.Kind != o.Kind {
		return TablesAll(), nil
	}
	switch t.Kind {
	case TabTuple:
		return t.unionTuple(ctx, o)
	case TabRecord:
		return t.unionRecord(ctx, o)
	case TabArray:
		elem, err := t.Array.Union(ctx, *o.Array)
		if err != nil {
			return Tables{}, err
		}
		return TablesArray(elem), nil
	default: // TabMap
		key, err := t.MapKey.Union(ctx, *o.MapKey)
		if err != nil {
			return Tables{}, err
		}
		val, err := t.MapVal.Union(ctx, *o.MapVal)
		if err != nil {
			return Tables{}, err
		}
		return TablesMap(key, val), nil
	}
}

func (t Tables) unionTuple(ctx *TypeContext, o Tables) (Tables, error) {
	n := len(t.Tuple)
	if len(o.Tuple) > n {
		n = len(o.Tuple)
	}
	out := make([]Slot, n)
	for i := 0; i < n; i++ {
		a, aok := slotAt(t.Tuple, i)
		b, bok := slotAt(o.Tuple, i)
		if aok && bok {
			s, err := a.Union(ctx, b)
			if err != nil {
				return Tables{}, err
			}
			out[i] = s
			continue
		}
		present := a
		if !aok {
			present = b
		}
		out[i] = padWithNil(ctx, present)
	}
	return TablesTuple(out...), nil
}

func slotAt(s []Slot, i int) (Slot, bool) {
	if i < len(s) {
		return s[i], true
	}
	return Slot{}, false
}

// padWithNil implements "unequal arity pads missing positions with
// Just(Nil) and the resulting slot becomes VarOrConst(original∪Nil)".
func padWithNil(ctx *TypeContext, present Slot) Slot {
	ty, _ := present.Type.Union(ctx, Nil())
	mark := Mark(0)
	if ctx != nil {
		mark = ctx.Marks.Gen()
	}
	return VarOrConstSlot(ty, mark)
}

func (t Tables) unionRecord(ctx *TypeContext, o Tables) (Tables, error) {
	out := make(map[string]Slot, len(t.Record)+len(o.Record))
	for k, a := range t.Record {
		if b, ok := o.Record[k]; ok {
			s, err := a.Union(ctx, b)
			if err != nil {
				return Tables{}, err
			}
			out[k] = s
		} else {
			out[k] = padWithNil(ctx, a)
		}
	}
	for k, b := range o.Record {
		if _, ok := t.Record[k]; !ok {
			out[k] = padWithNil(ctx, b)
		}
	}
	return TablesRecord(out), nil
}

// AssertSub implements table subtyping, mirroring the union rules with
// contravariant treatment of the written-to side (see §4.1). Within a
// single shape this reduces to positional/keyed Slot.AssertSub.
func (t Tables) AssertSub(ctx *TypeContext, o Tables) error {
	if o.Kind == TabAll {
		return nil
	}
	if t.Kind == TabEmpty {
		return nil
	}
	if t.Kind != o.Kind {
		return &TypeMismatchError{Got: t, Expected: o, Op: OpSub}
	}
	switch t.Kind {
	case TabTuple:
		if len(t.Tuple) != len(o.Tuple) {
			return &TypeMismatchError{Got: t, Expected: o, Op: OpSub}
		}
		for i := range t.Tuple {
			if err := t.Tuple[i].AssertSub(ctx, o.Tuple[i]); err != nil {
				return err
			}
		}
		return nil
	case TabRecord:
		for k, want := range o.Record {
			got, ok := t.Record[k]
			if !ok {
				return &TypeMismatchError{Got: t, Expected: o, Op: OpSub}
			}
			if err := got.AssertSub(ctx, want); err != nil {
				return err
			}
		}
		return nil
	case TabArray:
		return t.Array.AssertSub(ctx, *o.Array)
	default:
		if err := t.MapKey.AssertSub(ctx, *o.MapKey); err != nil {
			return err
		}
		return t.MapVal.AssertSub(ctx, *o.MapVal)
	}
}

// AssertEq checks structural equality.
func (t Tables) AssertEq(ctx *TypeContext, o Tables) error {
	if t.Kind != o.Kind {
		return &TypeMismatchError{Got: t, Expected: o, Op: OpEq}
	}
	switch t.Kind {
	case TabAll, TabEmpty:
		return nil
	case TabTuple:
		if len(t.Tuple) != len(o.Tuple) {
			return &TypeMismatchError{Got: t, Expected: o, Op: OpEq}
		}
		for i := range t.Tuple {
			if err := t.Tuple[i].AssertEq(ctx, o.Tuple[i]); err != nil {
				return err
			}
		}
		return nil
	case TabRecord:
		if len(t.Record) != len(o.Record) {
			return &TypeMismatchError{Got: t, Expected: o, Op: OpEq}
		}
		for k, a := range t.Record {
			b, ok := o.Record[k]
			if !ok {
				return &TypeMismatchError{Got: t, Expected: o, Op: OpEq}
			}
			if err := a.AssertEq(ctx, b); err != nil {
				return err
			}
		}
		return nil
	case TabArray:
		return t.Array.AssertEq(ctx, *o.Array)
	default:
		if err := t.MapKey.AssertEq(ctx, *o.MapKey); err != nil {
			return err
		}
		return t.MapVal.AssertEq(ctx, *o.MapVal)
	}
}

// Normalize recursively normalizes nested slots.
func (t Tables) Normalize(ctx *TypeContext) Tables {
	switch t.Kind {
	case TabTuple:
		out := make([]Slot, len(t.Tuple))
		for i, s := range t.Tuple {
			out[i] = s.Normalize(ctx)
		}
		return TablesTuple(out...)
	case TabRecord:
		out := make(map[string]Slot, len(t.Record))
		for k, s := range t.Record {
			out[k] = s.Normalize(ctx)
		}
		return TablesRecord(out)
	case TabArray:
		elem := t.Array.Normalize(ctx)
		return TablesArray(elem)
	case TabMap:
		val := t.MapVal.Normalize(ctx)
		key := t.MapKey.Normalize(ctx)
		return TablesMap(key, val)
	default:
		return t
	}
}
