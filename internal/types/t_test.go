package types

import "testing"

func mustUnion(t *testing.T, ctx *TypeContext, a, b T) T {
	t.Helper()
	out, err := a.Union(ctx, b)
	if err != nil {
		t.Fatalf("union(%s, %s): %v", a, b, err)
	}
	return out
}

func TestUnionIdempotenceCommutativityDynamicNone(t *testing.T) {
	ctx := NewTypeContext()
	a := Ints(1, 2, 3)

	if err := mustUnion(t, ctx, a, a).AssertEq(ctx, a); err != nil {
		t.Fatalf("a ∪ a ≡ a: %v", err)
	}

	b := Str("x")
	ab := mustUnion(t, ctx, a, b)
	ba := mustUnion(t, ctx, b, a)
	if err := ab.AssertEq(ctx, ba); err != nil {
		t.Fatalf("commutativity: %v", err)
	}

	if err := mustUnion(t, ctx, Dynamic(), a).AssertEq(ctx, Dynamic()); err != nil {
		t.Fatalf("Dynamic ∪ a ≡ Dynamic: %v", err)
	}
	if err := mustUnion(t, ctx, None(), a).AssertEq(ctx, a); err != nil {
		t.Fatalf("None ∪ a ≡ a: %v", err)
	}
}

func TestAssertEqAbsorbsDynamicOnEitherSide(t *testing.T) {
	ctx := NewTypeContext()
	if err := Dynamic().AssertEq(ctx, Integer()); err != nil {
		t.Fatalf("Dynamic ≡ integer (left Dynamic): %v", err)
	}
	if err := Integer().AssertEq(ctx, Dynamic()); err != nil {
		t.Fatalf("integer ≡ Dynamic (right Dynamic): %v", err)
	}
}

func TestBooleanIsSubtypeOfUnionCoveringBothArms(t *testing.T) {
	ctx := NewTypeContext()
	u := mustUnion(t, ctx, mustUnion(t, ctx, True(), False()), Integer())
	if err := Boolean().AssertSub(ctx, u); err != nil {
		t.Fatalf("boolean ≤ (true|false|integer): %v", err)
	}
	onlyTrue := mustUnion(t, ctx, True(), Integer())
	if err := Boolean().AssertSub(ctx, onlyTrue); err == nil {
		t.Fatalf("boolean ≤ (true|integer) should fail: false is not covered")
	}
}

func TestUnionAssociativity(t *testing.T) {
	ctx := NewTypeContext()
	a, b, c := Int(1), Str("y"), True()

	ab_c := mustUnion(t, ctx, mustUnion(t, ctx, a, b), c)
	a_bc := mustUnion(t, ctx, a, mustUnion(t, ctx, b, c))
	if err := ab_c.AssertEq(ctx, a_bc); err != nil {
		t.Fatalf("associativity: %v", err)
	}
}

func TestSubtypeReflexivityAndUnionBounds(t *testing.T) {
	ctx := NewTypeContext()
	a, b := Int(1), Str("y")

	if err := a.AssertSub(ctx, a); err != nil {
		t.Fatalf("a ≤ a: %v", err)
	}
	u := mustUnion(t, ctx, a, b)
	if err := a.AssertSub(ctx, u); err != nil {
		t.Fatalf("a ≤ (a ∪ b): %v", err)
	}
	if err := u.AssertSub(ctx, u); err != nil {
		t.Fatalf("(a ∪ b) ≤ (a ∪ b): %v", err)
	}
}

func TestArrayUnionFlavorPromotion(t *testing.T) {
	ctx := NewTypeContext()

	justArr := mustUnion(t, ctx, Array(JustSlot(Integer())), Array(JustSlot(Integer())))
	if justArr.TablesVal.Array.Flavor != FlavorJust {
		t.Fatalf("array(Just) ∪ array(Just) should stay Just, got %s", justArr.TablesVal.Array.Flavor)
	}

	varArr := mustUnion(t, ctx, Array(VarSlot(Integer())), Array(VarSlot(Integer())))
	if varArr.TablesVal.Array.Flavor != FlavorVarOrConst {
		t.Fatalf("array(Var) ∪ array(Var) should promote to VarOrConst, got %s", varArr.TablesVal.Array.Flavor)
	}
}

func TestRecordUnionOptionalPromotion(t *testing.T) {
	ctx := NewTypeContext()
	a := Record(map[string]Slot{
		"foo": JustSlot(Int(3)),
		"bar": JustSlot(AnyString()),
	})
	b := Record(map[string]Slot{
		"foo": JustSlot(Int(4)),
	})
	merged := mustUnion(t, ctx, a, b)
	rec := merged.TablesVal.Record

	if err := rec["foo"].Type.AssertEq(ctx, Ints(3, 4)); err != nil {
		t.Fatalf("foo should be ints({3,4}): %v", err)
	}
	barSlot := rec["bar"]
	if barSlot.Flavor != FlavorVarOrConst {
		t.Fatalf("bar should be promoted to VarOrConst, got %s", barSlot.Flavor)
	}
	if !barSlot.Type.Flags().HasAny(FlagNil) {
		t.Fatalf("bar should have gained nil from the optionalness rule")
	}
}

func TestRecordUnionWithMapYieldsAll(t *testing.T) {
	ctx := NewTypeContext()
	rec := Record(map[string]Slot{"k": JustSlot(Integer())})
	m := MapT(AnyString(), JustSlot(Integer()))
	merged := mustUnion(t, ctx, rec, m)
	if merged.TablesVal.Kind != TabAll {
		t.Fatalf("record ∪ map should yield Tables::All, got %v", merged)
	}
}

func TestTVarBoundsScenario4(t *testing.T) {
	ctx := NewTypeContext()
	v1 := ctx.GenTVar()

	if err := ctx.AssertTVarSub(v1, Integer()); err != nil {
		t.Fatalf("v1 ≤ integer should succeed: %v", err)
	}
	if err := ctx.AssertTVarSub(v1, AnyString()); err == nil {
		t.Fatalf("v1 ≤ string should fail after v1 ≤ integer")
	}
}

func TestTVarBoundsScenario5(t *testing.T) {
	ctx := NewTypeContext()
	v1 := ctx.GenTVar()
	v2 := ctx.GenTVar()

	if err := ctx.AssertTVarSubTVar(v1, v2); err != nil {
		t.Fatalf("v1 ≤ v2: %v", err)
	}
	if err := ctx.AssertTVarSub(v2, AnyString()); err != nil {
		t.Fatalf("v2 ≤ string: %v", err)
	}
	if err := ctx.AssertTVarSub(v1, Integer()); err == nil {
		t.Fatalf("v1 ≤ integer should fail: upper(v1) already propagated to string")
	}
}

func TestNormalizeIsFixpoint(t *testing.T) {
	ctx := NewTypeContext()
	x := mustUnion(t, ctx, Int(1), Str("a"))
	once := x.Normalize(ctx)
	twice := once.Normalize(ctx)
	if err := once.AssertEq(ctx, twice); err != nil {
		t.Fatalf("normalize should be a fixpoint: %v", err)
	}
}
