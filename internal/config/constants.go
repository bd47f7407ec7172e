// Package config carries process-wide mode flags and the small vocabularies
// (attribute names, config file names) that the rest of the checker core
// shares rather than re-declaring.
package config

// IsTestMode indicates the checker is running under `go test`.
//
// When true, TVar and Mark names that were generated fresh (rather than
// given by source) are rendered as "t?"/"m?" in String() so that golden
// output is deterministic regardless of allocation order.
var IsTestMode = false

// ConfigFileNames are the base names tried, in order, under the workspace
// root when no explicit config path is given.
var ConfigFileNames = []string{
	"kailua.json",
	".vscode/kailua.json",
}

// ChunkSuffix is the file extension appended to a resolved module name
// when searching package_path/package_cpath entries.
const ChunkSuffix = ".kailua"

// Recognized attribute names (see Tag.From). Centralized here the way the
// teacher centralizes builtin function/type names in this same file.
const (
	AttrRequire      = "require"
	AttrType         = "type"
	AttrAssert       = "assert"
	AttrAssertNot    = "assert_not"
	AttrAssertType   = "assert_type"
	AttrGenericPairs = "generic_pairs"
	AttrGlobalEnv    = "genv"
	AttrGlobalEval   = "geval"
	AttrBecomeModule = "become_module"
	AttrPackagePath  = "package_path"
	AttrPackageCpath = "package_cpath"
	AttrStringMeta   = "string_meta"
	AttrMakeClass    = "make_class"

	internalPrefix = "internal "

	AttrInternalSubtype       = internalPrefix + "subtype"
	AttrInternalNoSubtype     = internalPrefix + "no_subtype"
	AttrInternalNoSubtype2    = internalPrefix + "no_subtype2"
	AttrInternalConstructible = internalPrefix + "constructible"
	AttrInternalConstructor   = internalPrefix + "constructor"
	AttrInternalGenTvar       = internalPrefix + "kailua_gen_tvar"
	AttrInternalAssertTvar    = internalPrefix + "kailua_assert_tvar"
)
