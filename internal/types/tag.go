package types

import "github.com/funvibe/kailua/internal/config"

// Tag is the closed enumeration of attributes that annotate a T with
// checker-visible semantics (spec §4.6). Internal tags (the
// `internal ...`-prefixed names) are generated by the checker itself and
// must never be accepted when parsed from user-written source.
type Tag int

const (
	TagRequire Tag = iota
	TagType
	TagAssert
	TagAssertNot
	TagAssertType
	TagGenericPairs
	TagGlobalEnv     // declared, not implemented upstream; see DESIGN.md
	TagGlobalEval    // declared, not implemented upstream; see DESIGN.md
	TagBecomeModule  // declared, not implemented upstream; see DESIGN.md
	TagPackagePath
	TagPackageCpath
	TagStringMeta
	TagMakeClass
	TagConstructible
	TagConstructor
	TagKailuaGenTvar
	TagKailuaAssertTvar
	TagSubtype
	TagNoSubtype
	TagNoSubtype2
)

var tagNames = map[Tag]string{
	TagRequire:          config.AttrRequire,
	TagType:              config.AttrType,
	TagAssert:            config.AttrAssert,
	TagAssertNot:         config.AttrAssertNot,
	TagAssertType:        config.AttrAssertType,
	TagGenericPairs:      config.AttrGenericPairs,
	TagGlobalEnv:         config.AttrGlobalEnv,
	TagGlobalEval:        config.AttrGlobalEval,
	TagBecomeModule:      config.AttrBecomeModule,
	TagPackagePath:       config.AttrPackagePath,
	TagPackageCpath:      config.AttrPackageCpath,
	TagStringMeta:        config.AttrStringMeta,
	TagMakeClass:         config.AttrMakeClass,
	TagConstructible:     config.AttrInternalConstructible,
	TagConstructor:       config.AttrInternalConstructor,
	TagKailuaGenTvar:     config.AttrInternalGenTvar,
	TagKailuaAssertTvar:  config.AttrInternalAssertTvar,
	TagSubtype:           config.AttrInternalSubtype,
	TagNoSubtype:         config.AttrInternalNoSubtype,
	TagNoSubtype2:        config.AttrInternalNoSubtype2,
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, len(tagNames))
	for t, n := range tagNames {
		m[n] = t
	}
	return m
}()

// Name returns the tag's stable short name, used for diagnostics and for
// round-tripping back into an attribute annotation.
func (t Tag) Name() string { return tagNames[t] }

// internalTags are reserved; From always rejects them (the checker
// itself constructs them without going through From).
var internalTags = map[Tag]bool{
	TagConstructible:    true,
	TagConstructor:      true,
	TagKailuaGenTvar:    true,
	TagKailuaAssertTvar: true,
	TagSubtype:          true,
	TagNoSubtype:        true,
	TagNoSubtype2:       true,
}

// IsInternal reports whether t is one of the checker's own reserved
// tags, never valid as a user-written attribute.
func (t Tag) IsInternal() bool { return internalTags[t] }

// From parses an attribute name into a Tag. Unknown names return
// (0, false); callers report this as a warning-level UnknownAttribute
// and drop the attribute, per spec §4.6. Internal names are rejected
// here too — a resolver parsing user source must never mint an internal
// tag from text.
func From(name string) (Tag, bool) {
	t, ok := tagsByName[name]
	if !ok || t.IsInternal() {
		return 0, false
	}
	return t, true
}

// ScopeLocal reports whether the tag's effect does not escape the
// current lexical scope, unlike Require, the package-path tags, or
// StringMeta, whose effect is visible to the rest of the module (or
// beyond).
func (t Tag) ScopeLocal() bool {
	switch t {
	case TagType, TagAssert, TagAssertNot, TagAssertType, TagGenericPairs,
		TagMakeClass, TagConstructible, TagConstructor,
		TagKailuaGenTvar, TagKailuaAssertTvar:
		return true
	default:
		return false
	}
}

// NeedsSubtype reports whether assigning a plain, untagged value of the
// same shape into a slot carrying this tag must go through the strict
// subtype rule rather than mere shape compatibility (e.g. a `var [type]
// function(any) -> string` cannot be updated by a bare `function(any) ->
// string`). Most tags need it; PackagePath/PackageCpath/Constructible/
// Constructor are assignment-only and so do not.
func (t Tag) NeedsSubtype() bool {
	switch t {
	case TagSubtype:
		return true
	case TagNoSubtype, TagNoSubtype2:
		return false
	case TagPackagePath, TagPackageCpath, TagConstructible, TagConstructor:
		return false
	default:
		return true
	}
}
