package types

import "testing"

func TestTagFromRoundTrips(t *testing.T) {
	for _, name := range []string{"require", "assert", "make_class", "generic_pairs"} {
		tag, ok := From(name)
		if !ok {
			t.Fatalf("From(%q) should succeed", name)
		}
		if tag.Name() != name {
			t.Fatalf("Name() roundtrip: got %q, want %q", tag.Name(), name)
		}
	}
}

func TestTagFromRejectsInternalAndUnknown(t *testing.T) {
	if _, ok := From("internal subtype"); ok {
		t.Fatalf("internal tags must never parse from user attributes")
	}
	if _, ok := From("not_a_real_tag"); ok {
		t.Fatalf("unknown attribute names must not parse")
	}
}

func TestTagScopeLocalAndNeedsSubtype(t *testing.T) {
	if !TagAssert.ScopeLocal() {
		t.Fatalf("assert should be scope-local")
	}
	if TagRequire.ScopeLocal() {
		t.Fatalf("require should not be scope-local")
	}
	if !TagType.NeedsSubtype() {
		t.Fatalf("[type] fn must require strict subtyping")
	}
}

func TestTagScopeLocalFullTrueSet(t *testing.T) {
	for _, tag := range []Tag{
		TagType, TagGenericPairs, TagMakeClass,
		TagConstructible, TagConstructor, TagKailuaGenTvar,
	} {
		if !tag.ScopeLocal() {
			t.Fatalf("%s should be scope-local", tag.Name())
		}
	}
	for _, tag := range []Tag{TagSubtype, TagNoSubtype, TagNoSubtype2} {
		if tag.ScopeLocal() {
			t.Fatalf("%s has no scope_local case upstream and must default to false", tag.Name())
		}
	}
}

func TestTagNeedsSubtypeMatchesUpstreamDefaults(t *testing.T) {
	if TagConstructible.NeedsSubtype() {
		t.Fatalf("constructible is assignment-only and must not need strict subtyping")
	}
	if TagConstructor.NeedsSubtype() {
		t.Fatalf("constructor is assignment-only and must not need strict subtyping")
	}
	if !TagRequire.NeedsSubtype() {
		t.Fatalf("require falls into the upstream default (true)")
	}
	if !TagAssert.NeedsSubtype() {
		t.Fatalf("assert falls into the upstream default (true)")
	}
	if !TagKailuaGenTvar.NeedsSubtype() {
		t.Fatalf("kailua_gen_tvar falls into the upstream default (true)")
	}
}

func TestBuiltinStripsTagOnMismatch(t *testing.T) {
	ctx := NewTypeContext()
	tagged := BuiltinT(TagAssert, Integer())
	untagged := Integer()

	merged, err := tagged.Union(ctx, untagged)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	if merged.Kind == TBuiltin {
		t.Fatalf("merging a tagged value with an untagged one must drop the tag")
	}
}

func TestBuiltinPreservesIdenticalTag(t *testing.T) {
	ctx := NewTypeContext()
	a := BuiltinT(TagAssert, Int(1))
	b := BuiltinT(TagAssert, Int(2))
	merged, err := a.Union(ctx, b)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	if merged.Kind != TBuiltin || merged.BuiltinTag != TagAssert {
		t.Fatalf("matching tags should be preserved across union")
	}
}
