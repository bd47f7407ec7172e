package kind

import "testing"

func TestOfConstructsBareTag(t *testing.T) {
	k := Of(Table)
	if k.Tag != Table {
		t.Fatalf("Of(Table).Tag = %v, want Table", k.Tag)
	}
}

func TestLiteralConstructorsCarryPayload(t *testing.T) {
	if k := OfBool(true); k.Tag != BooleanLit || !k.BoolValue {
		t.Fatalf("OfBool(true) = %+v", k)
	}
	if k := OfInt(42); k.Tag != IntegerLit || k.IntValue != 42 {
		t.Fatalf("OfInt(42) = %+v", k)
	}
	if k := OfString("x"); k.Tag != StringLit || k.StrValue != "x" {
		t.Fatalf("OfString(%q) = %+v", "x", k)
	}
}

func TestOfUnionRequiresAtLeastOnePart(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("OfUnion() with no parts should panic")
		}
	}()
	OfUnion()
}

func TestOfUnionCarriesParts(t *testing.T) {
	u := OfUnion(Of(Nil), OfInt(1))
	if u.Tag != Union || len(u.UnionParts) != 2 {
		t.Fatalf("OfUnion(...) = %+v", u)
	}
}
