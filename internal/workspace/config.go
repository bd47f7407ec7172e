package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/kailua/internal/config"
	"github.com/funvibe/kailua/internal/diagnostics"
)

// PreloadConfig is the `preload` config key: modules to open/require
// before the start file (spec §6).
type PreloadConfig struct {
	Open    []string `json:"open"`
	Require []string `json:"require"`
}

// Config is the decoded `kailua.json` workspace configuration (spec §6).
type Config struct {
	StartPath    []string       `json:"start_path"`
	PackagePath  string         `json:"package_path"`
	PackageCpath string         `json:"package_cpath"`
	MessageLang  string         `json:"message_lang"`
	Preload      PreloadConfig  `json:"preload"`
}

// rawConfig mirrors Config but accepts start_path as either a string or
// an array of strings (spec §6: "string or array-of-strings").
type rawConfig struct {
	StartPath    json.RawMessage `json:"start_path"`
	PackagePath  string          `json:"package_path"`
	PackageCpath string          `json:"package_cpath"`
	MessageLang  string          `json:"message_lang"`
	Preload      PreloadConfig   `json:"preload"`
}

// Workspace is a loaded configuration bound to the directory it was
// found in.
type Workspace struct {
	Root   string
	Config Config
}

// ConfigPath searches root for the config-file candidates in order
// (BASE/kailua.json, BASE/.vscode/kailua.json) and returns the first
// that exists.
func ConfigPath(root string) (string, bool) {
	for _, name := range config.ConfigFileNames {
		p := filepath.Join(root, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}

// LoadWorkspace locates and decodes the workspace config under root, or
// returns a Workspace with zero-value Config (defaults) if no config
// file is present — a missing config file is not an error (spec §7:
// "the caller may proceed with defaults").
func LoadWorkspace(root string) (*Workspace, error) {
	path, ok := ConfigPath(root)
	if !ok {
		return &Workspace{Root: root}, nil
	}
	raw, _, err := readFileIfExists(path)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.Span{File: path}, err)
	}
	cfg, err := decodeConfig(raw)
	if err != nil {
		return nil, diagnostics.New(diagnostics.InvalidConfig, diagnostics.Span{File: path}, err)
	}
	return &Workspace{Root: root, Config: *cfg}, nil
}

func decodeConfig(raw []byte) (*Config, error) {
	clean := dehumanizeJSON(raw)
	var rc rawConfig
	if err := json.Unmarshal(clean, &rc); err != nil {
		return nil, err
	}
	cfg := &Config{
		PackagePath:  rc.PackagePath,
		PackageCpath: rc.PackageCpath,
		MessageLang:  rc.MessageLang,
		Preload:      rc.Preload,
	}
	if len(rc.StartPath) > 0 {
		var single string
		if err := json.Unmarshal(rc.StartPath, &single); err == nil {
			cfg.StartPath = []string{single}
		} else {
			var many []string
			if err := json.Unmarshal(rc.StartPath, &many); err != nil {
				return nil, err
			}
			cfg.StartPath = many
		}
	}
	return cfg, nil
}

// dehumanizeJSON strips `//` line comments, `/* */` block comments, and
// a single trailing comma before `]`/`}`, all while respecting string
// literals (so a `//` or comma inside a quoted string is left alone).
// Grounded on kailua_workspace::dehumanize_json.
func dehumanizeJSON(src []byte) []byte {
	var out []byte
	inString := false
	escaped := false

	for i := 0; i < len(src); i++ {
		c := src[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			i--
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i++
		case c == ',':
			j := i + 1
			for j < len(src) && isJSONSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == ']' || src[j] == '}') {
				// drop the stray trailing comma entirely
				continue
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// ApplySearchPathsTemplate expands `{start_dir}` in tmpl to the parent
// directory of startPath (the empty parent substituted with "."), per
// spec §6. Unbalanced or unknown placeholders fail template validation.
// Grounded on kailua_workspace::apply_search_paths_template.
func ApplySearchPathsTemplate(tmpl, startPath string) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(tmpl) {
		c := tmpl[i]
		if c == '}' {
			return "", diagnostics.New(diagnostics.InvalidConfig, diagnostics.Span{},
				fmt.Sprintf("unbalanced '}' in search path template %q", tmpl))
		}
		if c != '{' {
			out.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			return "", diagnostics.New(diagnostics.InvalidConfig, diagnostics.Span{},
				fmt.Sprintf("unbalanced '{' in search path template %q", tmpl))
		}
		name := tmpl[i+1 : i+end]
		switch name {
		case "start_dir":
			out.WriteString(filepath.Dir(startPath))
		default:
			return "", diagnostics.New(diagnostics.InvalidConfig, diagnostics.Span{},
				fmt.Sprintf("unknown search path template variable %q", name))
		}
		i += end + 1
	}
	return out.String(), nil
}

func readFileIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return stripBOM(data), true, nil
}
