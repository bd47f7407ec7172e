package types

import "testing"

func TestNumbersUnionLiteralSets(t *testing.T) {
	got := NumbersLit(3).Union(NumbersLit(4))
	want := NumbersSet(3, 4)
	if err := got.AssertEq(want); err != nil {
		t.Fatalf("int(3) ∪ int(4): %v", err)
	}

	got2 := got.Union(NumbersLit(5))
	want2 := NumbersSet(3, 4, 5)
	if err := got2.AssertEq(want2); err != nil {
		t.Fatalf("ints({3,4}) ∪ int(5): %v", err)
	}
}

func TestNumbersUnionWidensToIntThenAll(t *testing.T) {
	if got := NumbersSet(1, 2).Union(NumbersInt()); got.Kind != NumInt {
		t.Fatalf("Some ∪ Int should widen to Int, got %v", got)
	}
	if got := NumbersInt().Union(NumbersAll()); got.Kind != NumAll {
		t.Fatalf("Int ∪ All should widen to All, got %v", got)
	}
}

func TestNumbersAssertSubOrdering(t *testing.T) {
	if err := NumbersLit(3).AssertSub(NumbersSet(3, 4)); err != nil {
		t.Fatalf("3 ≤ {3,4}: %v", err)
	}
	if err := NumbersSet(3, 4).AssertSub(NumbersInt()); err != nil {
		t.Fatalf("{3,4} ≤ integer: %v", err)
	}
	if err := NumbersInt().AssertSub(NumbersAll()); err != nil {
		t.Fatalf("integer ≤ number: %v", err)
	}
	if err := NumbersLit(5).AssertSub(NumbersSet(3, 4)); err == nil {
		t.Fatalf("5 ≤ {3,4} should fail")
	}
}

func TestNumbersNormalizeDropsEmptySet(t *testing.T) {
	empty := Numbers{Kind: NumSome, Set: map[int32]struct{}{}}
	if _, ok := empty.Normalize(); ok {
		t.Fatalf("empty literal set should normalize to bottom")
	}
}
