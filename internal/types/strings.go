package types

import (
	"fmt"
	"sort"
)

// StringKind discriminates the case a Strings value holds.
type StringKind int

const (
	StrAll  StringKind = iota // all strings
	StrOne                    // a single string literal
	StrSome                   // a non-empty, non-singleton set of string literals
)

// Strings is the string primitive family: All ⊇ Some(S) ⊇ One(v).
type Strings struct {
	Kind StringKind
	One  string
	Set  map[string]struct{} // non-nil and non-empty iff Kind == StrSome
}

func StringsAll() Strings         { return Strings{Kind: StrAll} }
func StringsLit(v string) Strings { return Strings{Kind: StrOne, One: v} }

// StringsSet builds a Strings from a literal set, collapsing to One when
// the set has a single element. Mirrors NumbersSet; see its comment for
// the empty-set contract.
func StringsSet(vs ...string) Strings {
	if len(vs) == 0 {
		panic("types: StringsSet requires at least one literal")
	}
	if len(vs) == 1 {
		return StringsLit(vs[0])
	}
	set := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		set[v] = struct{}{}
	}
	if len(set) == 1 {
		for v := range set {
			return StringsLit(v)
		}
	}
	return Strings{Kind: StrSome, Set: set}
}

func (s Strings) literalSet() map[string]struct{} {
	switch s.Kind {
	case StrOne:
		return map[string]struct{}{s.One: {}}
	case StrSome:
		return s.Set
	default:
		return nil
	}
}

func (s Strings) sortedLiterals() []string {
	set := s.literalSet()
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s Strings) String() string {
	switch s.Kind {
	case StrAll:
		return "string"
	case StrOne:
		return fmt.Sprintf("%q", s.One)
	default:
		return fmt.Sprintf("%q", s.sortedLiterals())
	}
}

// Union joins two Strings per the family ordering One ≤ Some ≤ All.
func (s Strings) Union(o Strings) Strings {
	if s.Kind == StrAll || o.Kind == StrAll {
		return StringsAll()
	}
	merged := s.sortedLiterals()
	merged = append(merged, o.sortedLiterals()...)
	return StringsSet(merged...)
}

// AssertSub checks s ≤ o.
func (s Strings) AssertSub(o Strings) error {
	if o.Kind == StrAll {
		return nil
	}
	if s.Kind == StrAll {
		return &TypeMismatchError{Got: s, Expected: o, Op: OpSub}
	}
	oSet := o.literalSet()
	for _, v := range s.sortedLiterals() {
		if _, ok := oSet[v]; !ok {
			return &TypeMismatchError{Got: s, Expected: o, Op: OpSub}
		}
	}
	return nil
}

// AssertEq checks structural equality of two Strings shapes.
func (s Strings) AssertEq(o Strings) error {
	if s.Kind != o.Kind {
		return &TypeMismatchError{Got: s, Expected: o, Op: OpEq}
	}
	switch s.Kind {
	case StrAll:
		return nil
	case StrOne:
		if s.One != o.One {
			return &TypeMismatchError{Got: s, Expected: o, Op: OpEq}
		}
		return nil
	default:
		sSet, oSet := s.literalSet(), o.literalSet()
		if len(sSet) != len(oSet) {
			return &TypeMismatchError{Got: s, Expected: o, Op: OpEq}
		}
		for v := range sSet {
			if _, ok := oSet[v]; !ok {
				return &TypeMismatchError{Got: s, Expected: o, Op: OpEq}
			}
		}
		return nil
	}
}

// Normalize drops empty literal sets; see Numbers.Normalize.
func (s Strings) Normalize() (Strings, bool) {
	if s.Kind == StrSome && len(s.Set) == 0 {
		return Strings{}, false
	}
	return s, true
}
