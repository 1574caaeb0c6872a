package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specYAML = `name: people
columns:
  - title: "#"
    col: index
  - title: Name
    col: name
    extra:
      requiredHeader: true
  - title: Bio
    col: bio
    extra:
      default: "-"
      ellipses: 5
`

const recordsJSON = `[
  {"name": "Ada", "bio": "Mathematician and writer", "age": 36},
  {"name": "Grace", "bio": "", "age": 85},
  {"name": "Linus", "bio": "Kernel", "age": 28}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBuildYAML(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "columns.yaml", specYAML)

	out, err := runCmd(t, "", "build", spec)
	require.NoError(t, err)
	assert.Contains(t, out, "title: '#'")
	assert.Contains(t, out, "customRender: <func:index>")
	assert.Contains(t, out, "customHeaderCell: <func:requiredHeader>")
	assert.Contains(t, out, "customCell: <func:ellipses>")
	assert.Less(t, strings.Index(out, "title: Name"), strings.Index(out, "title: Bio"))
}

func TestBuildJSON(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "columns.yaml", specYAML)

	out, err := runCmd(t, "", "build", spec, "-o", "json")
	require.NoError(t, err)

	var cols []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cols))
	require.Len(t, cols, 3)
	assert.Equal(t, "index", cols[0]["dataIndex"])
	assert.Equal(t, "center", cols[1]["align"])
	assert.Equal(t, "center", cols[2]["align"])
	assert.NotContains(t, cols[2], "default")
}

func TestBuildTOML(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "columns.yaml", specYAML)

	out, err := runCmd(t, "", "build", spec, "-o", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[[columns]]")
	assert.Contains(t, out, "dataIndex = 'bio'")
}

func TestBuildRejectsUnknownFormat(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "columns.yaml", specYAML)

	_, err := runCmd(t, "", "build", spec, "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestBuildInvalidSpec(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "columns.yaml", "columns:\n  - title: A\n")

	_, err := runCmd(t, "", "build", spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "col is required")
}

func TestPreviewText(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "columns.yaml", specYAML)
	records := writeFile(t, dir, "rows.json", recordsJSON)

	out, err := runCmd(t, "", "preview", spec, records, "--no-color", "--width", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Mathe...")
	assert.Contains(t, out, "Kernel")
	assert.NotContains(t, out, "<span")
}

func TestPreviewWhereAndLimit(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "columns.yaml", specYAML)
	records := writeFile(t, dir, "rows.json", recordsJSON)

	out, err := runCmd(t, "", "preview", spec, records, "--where", "_.age > 30", "--limit", "1", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| 1 ")
	assert.Contains(t, out, "Ada")
	assert.NotContains(t, out, "Grace")
	assert.NotContains(t, out, "Linus")
}

func TestPreviewStdin(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "columns.yaml", specYAML)

	out, err := runCmd(t, `{"name":"Solo","bio":"x"}`+"\n", "preview", spec, "-", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Solo")
}

func TestPreviewRejectsLimitWithTail(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "columns.yaml", specYAML)
	records := writeFile(t, dir, "rows.json", recordsJSON)

	_, err := runCmd(t, "", "preview", spec, records, "--limit", "1", "--tail", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record limiting")
}

func TestPreviewBadWhere(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "columns.yaml", specYAML)
	records := writeFile(t, dir, "rows.json", recordsJSON)

	_, err := runCmd(t, "", "preview", spec, records, "--where", "_.name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--where")
}

func TestPreviewUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "columns.yaml", specYAML)
	records := writeFile(t, dir, "rows.json", recordsJSON)
	cfg := writeFile(t, dir, "config.yaml", "output:\n  format: markdown\npreview:\n  tail: 1\n")

	out, err := runCmd(t, "", "preview", spec, records, "--config-file", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, ":---:")
	assert.Contains(t, out, "Linus")
	assert.NotContains(t, out, "Ada")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default length", args: []string{"truncate", "abcdefghijklmno"}, want: "abcdefghij...\n"},
		{name: "custom suffix", args: []string{"truncate", "hello world", "--len", "5", "--suffix", "~"}, want: "hello~\n"},
		{name: "short text", args: []string{"truncate", "hi", "--len", "5"}, want: "hi\n"},
		{name: "json number", args: []string{"truncate", "12345", "--len", "3", "--json", "--suffix", "~"}, want: "123...\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConfigGet(t *testing.T) {
	out, err := runCmd(t, "", "config", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "name: colkit")
	assert.Contains(t, out, "format: text")

	out, err = runCmd(t, "", "config", "get", "-o", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "preview")
}

func TestConfigFileInvalid(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "config.yaml", "output:\n  format: pdf\n")

	_, err := runCmd(t, "", "config", "get", "--config-file", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "colkit "))
}

func TestTerminalDeviceNames(t *testing.T) {
	in, out := terminalDeviceNames("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)

	in, out = terminalDeviceNames("linux")
	assert.Equal(t, "/dev/tty", in)
	assert.Equal(t, "/dev/tty", out)
}

func TestProgramOptionsNonFileReader(t *testing.T) {
	opts, cleanup := programOptions(strings.NewReader(""), &bytes.Buffer{})
	defer cleanup()
	assert.Len(t, opts, 2)
}

func TestFlagsDocumented(t *testing.T) {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		shorthands := map[string]string{}
		c.Flags().VisitAll(func(f *pflag.Flag) {
			assert.NotEmpty(t, f.Usage, "%s --%s", c.CommandPath(), f.Name)
			if f.Shorthand != "" {
				prev, dup := shorthands[f.Shorthand]
				assert.False(t, dup, "%s: -%s used by --%s and --%s", c.CommandPath(), f.Shorthand, prev, f.Name)
				shorthands[f.Shorthand] = f.Name
			}
		})
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(NewRootCmd())
}
