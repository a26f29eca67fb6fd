package config

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(result *ValidationResult) []string {
	out := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		out = append(out, e.Field)
	}
	return out
}

// mentions reports whether some error names token in its field or message
func mentions(result *ValidationResult, token string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e.Field, token) || strings.Contains(e.Message, token) {
			return true
		}
	}
	return false
}

func TestValidate_Valid(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), ".hdrcomp.yml"), `
user_paths:
  - include
  - '{{ env "SDK_ROOT" | default "/opt/sdk" }}/include'
  - sh: pkg-config --variable=includedir zlib
system_layouts:
  - root: /usr/lib/gcc/x86_64-linux-gnu
    segments: [include]
platform: linux
mode_filters:
  c: '\.h$'
  cuda:
    glob: "*.cuh"
`)

	result, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestValidate_Empty(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), ".hdrcomp.yml"), "")
	result, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidate_NotFound(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), ".hdrcomp.yml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestValidate_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown key", "include_paths: [a]\n", "include_paths"},
		{"wrong type", "local_only: yes-please\n", "local_only"},
		{"entry shape", "user_paths:\n  - cmd: echo\n", "user_paths.0"},
		{"layout without root", "system_layouts:\n  - segments: [include]\n", "root"},
		{"both regex and glob", "mode_filters:\n  c:\n    regex: x\n    glob: y\n", "mode_filters.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), ".hdrcomp.yml"), tt.content)
			result, err := Validate(path)
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.True(t, mentions(result, tt.field), "%v", result.Errors)
		})
	}
}

func TestValidate_SemanticErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"empty shell", "user_paths:\n  - sh: '  '\n", "user_paths/0"},
		{"multiline shell", "system_paths:\n  - sh: \"echo a\\necho b\"\n", "system_paths/0"},
		{"empty path", "user_paths: ['']\n", "user_paths/0"},
		{"bad template", "user_paths: ['{{ .Dir ']\n", "user_paths/0"},
		{"layout escapes", "system_layouts:\n  - root: /opt\n    segments: ['../etc']\n", "system_layouts/0"},
		{"unknown platform", "platform: beos\n", "platform"},
		{"bad regex", "mode_filters:\n  c: '('\n", "mode_filters/c"},
		{"unknown mode", "mode_filters:\n  fortran: '\\.f$'\n", "mode_filters/fortran"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), ".hdrcomp.yml"), tt.content)
			result, err := Validate(path)
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Contains(t, fields(result), tt.field)
		})
	}
}

func TestValidateWithSchema_Formats(t *testing.T) {
	result, err := ValidateWithSchema("x.json", []byte(`{"user_paths": ["a"], "ignore_global": true}`))
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = ValidateWithSchema("x.json", []byte(`{"user_paths": `))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"syntax"}, fields(result))

	result, err = ValidateWithSchema("x.toml", []byte("user_paths = [\"a\"]\nplatform = \"linux\"\n"))
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = ValidateWithSchema("x.toml", []byte("user_paths = [\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = ValidateWithSchema("x.yaml", []byte("user_paths: [\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	_, err = ValidateWithSchema("x.ini", nil)
	assert.Error(t, err)
}

func TestGetSchemaJSON(t *testing.T) {
	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(GetSchemaJSON()), &schema))

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"user_paths", "system_paths", "system_layouts", "platform", "mode_filters", "local_only", "ignore_global"} {
		assert.Contains(t, props, key)
	}
}
