package yaml

import (
	"testing"

	"github.com/0xalexb/hjarta-nullcfg/config"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_PreservesOrderAndNulls(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
zeta: 1
alpha: null
middle: ~
server:
  port: 25565
  motd: null
  hosts:
    - a.example.com
    - b.example.com
`)

	tree, err := parser.Parse(data)
	require.NoError(t, err)

	want := config.MapSlice{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: nil},
		{Key: "middle", Value: nil},
		{Key: "server", Value: config.MapSlice{
			{Key: "port", Value: 25565},
			{Key: "motd", Value: nil},
			{Key: "hosts", Value: []any{"a.example.com", "b.example.com"}},
		}},
	}

	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestParser_Parse_EmptyDocument(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	for _, data := range [][]byte{nil, []byte(""), []byte("# only a comment\n")} {
		tree, err := parser.Parse(data)
		require.NoError(t, err)
		assert.Empty(t, tree)
	}
}

func TestParser_Parse_NotMapping(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	_, err := parser.Parse([]byte("- a\n- b\n"))

	require.ErrorIs(t, err, ErrNotMapping)
}

func TestParser_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
invalid: yaml: content: [
`)

	_, err := parser.Parse(data)

	require.Error(t, err)
}

func TestParser_Emit_WritesExplicitNull(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	out, err := parser.Emit(config.MapSlice{
		{Key: "port", Value: 25565},
		{Key: "motd", Value: nil},
	})

	require.NoError(t, err)
	assert.Equal(t, "port: 25565\nmotd: null\n", string(out))
}

func TestParser_ParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "null", input: "null", want: nil},
		{name: "tilde", input: "~", want: nil},
		{name: "empty", input: "", want: nil},
		{name: "int", input: "42", want: 42},
		{name: "negative", input: "-7", want: -7},
		{name: "string", input: "hello", want: "hello"},
		{name: "bool", input: "true", want: true},
		{name: "sequence", input: "[1, a, null]", want: []any{1, "a", nil}},
		{
			name:  "mapping",
			input: "b: 1\na: null\n",
			want:  config.MapSlice{{Key: "b", Value: 1}, {Key: "a", Value: nil}},
		},
	}

	parser := NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parser.ParseValue([]byte(tt.input))
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected value (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_EmitValue(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	out, err := parser.EmitValue(nil)
	require.NoError(t, err)
	assert.Equal(t, "null\n", string(out))

	out, err = parser.EmitValue(25565)
	require.NoError(t, err)
	assert.Equal(t, "25565\n", string(out))

	out, err = parser.EmitValue(config.MapSlice{{Key: "motd", Value: nil}})
	require.NoError(t, err)
	assert.Equal(t, "motd: null\n", string(out))
}

func TestParser_RoundTrip(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	tree := config.MapSlice{
		{Key: "b", Value: "text"},
		{Key: "a", Value: nil},
		{Key: "nested", Value: config.MapSlice{
			{Key: "enabled", Value: true},
			{Key: "ratio", Value: 0.5},
			{Key: "empty", Value: config.MapSlice{}},
			{Key: "list", Value: []any{1, "two", nil}},
		}},
		{Key: "negative", Value: -7},
	}

	out, err := parser.Emit(tree)
	require.NoError(t, err)

	back, err := parser.Parse(out)
	require.NoError(t, err)

	if diff := cmp.Diff(tree, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_Decode(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct {
		Host string  `yaml:"host"`
		Port int     `yaml:"port"`
		MOTD *string `yaml:"motd"`
	}

	err := parser.Decode(config.MapSlice{
		{Key: "host", Value: "localhost"},
		{Key: "port", Value: 8080},
		{Key: "motd", Value: nil},
	}, &result)

	require.NoError(t, err)
	assert.Equal(t, "localhost", result.Host)
	assert.Equal(t, 8080, result.Port)
	assert.Nil(t, result.MOTD)
}

func TestParser_Extract_SingleLevelPath(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
api:
  host: localhost
  port: 8080
database:
  host: db.example.com
`)

	var result struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	}

	err := parser.Extract(data, "api", '.', &result)

	require.NoError(t, err)
	assert.Equal(t, "localhost", result.Host)
	assert.Equal(t, 8080, result.Port)
}

func TestParser_Extract_CustomSeparator(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
api:
  permissions:
    admin:
      read: true
      write: true
`)

	var result struct {
		Read  bool `yaml:"read"`
		Write bool `yaml:"write"`
	}

	err := parser.Extract(data, "api/permissions/admin", '/', &result)

	require.NoError(t, err)
	assert.True(t, result.Read)
	assert.True(t, result.Write)
}

func TestParser_Extract_EmptyPath(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct {
		Name string `yaml:"name"`
	}

	err := parser.Extract([]byte("name: test-app\n"), "", '.', &result)

	require.NoError(t, err)
	assert.Equal(t, "test-app", result.Name)
}

func TestParser_Extract_NonExistentKey(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result string

	err := parser.Extract([]byte("api:\n  host: localhost\n"), "nonexistent", '.', &result)

	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestParser_Extract_EmptyData(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct{}

	err := parser.Extract([]byte{}, "", '.', &result)

	require.ErrorIs(t, err, ErrEmptyData)
}

func TestConvertToYAMLPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		sep      rune
		expected string
	}{
		{
			name:     "single key",
			input:    "key",
			sep:      '.',
			expected: "$.key",
		},
		{
			name:     "two level path",
			input:    "api.permissions",
			sep:      '.',
			expected: "$.api.permissions",
		},
		{
			name:     "custom separator",
			input:    "database:connection:timeout",
			sep:      ':',
			expected: "$.database.connection.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := convertToYAMLPath(tt.input, tt.sep)
			assert.Equal(t, tt.expected, result)
		})
	}
}
