package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplySearchPathsTemplate(t *testing.T) {
	got, err := ApplySearchPathsTemplate("{start_dir}/?.lua", "foo/bar.lua")
	require.NoError(t, err)
	require.Equal(t, "foo/?.lua", got)

	got, err = ApplySearchPathsTemplate("{start_dir}/?.lua", "bar.lua")
	require.NoError(t, err)
	require.Equal(t, "./?.lua", got)

	_, err = ApplySearchPathsTemplate("{no_dir}/?.lua", "bar.lua")
	require.Error(t, err)

	_, err = ApplySearchPathsTemplate("{start_dir/?.lua", "bar.lua")
	require.Error(t, err)
}

func TestDehumanizeJSONStripsCommentsAndTrailingCommas(t *testing.T) {
	src := []byte(`{
		// a line comment
		"start_path": "main.lua", /* inline */
		"package_path": "?.lua;",
	}`)
	clean := dehumanizeJSON(src)

	cfg, err := decodeConfig([]byte(clean))
	require.NoError(t, err)
	require.Equal(t, []string{"main.lua"}, cfg.StartPath)
	require.Equal(t, "?.lua;", cfg.PackagePath)
}

func TestDehumanizeJSONLeavesStringContentAlone(t *testing.T) {
	src := []byte(`{"package_path": "http://example.com/?.lua"}`)
	clean := dehumanizeJSON(src)
	cfg, err := decodeConfig(clean)
	require.NoError(t, err)
	require.Equal(t, "http://example.com/?.lua", cfg.PackagePath)
}

func TestDecodeConfigAcceptsArrayStartPath(t *testing.T) {
	src := []byte(`{"start_path": ["a.lua", "b.lua"]}`)
	cfg, err := decodeConfig(src)
	require.NoError(t, err)
	require.Equal(t, []string{"a.lua", "b.lua"}, cfg.StartPath)
}
