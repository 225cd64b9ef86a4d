package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentic-research/randgen/internal/config"
	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/agentic-research/randgen/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands run in sequence
// do not see each other's values.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type workspace struct {
	config string
	store  string
}

func newWorkspace(t *testing.T, storeName string) workspace {
	dir := t.TempDir()
	return workspace{
		config: filepath.Join(dir, "randgen.hcl"),
		store:  filepath.Join(dir, storeName),
	}
}

func (w workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", w.config, "--store", w.store}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (w workspace) load(t *testing.T) *scheme.TemplateList {
	t.Helper()
	st, err := store.Open(w.store)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	doc, err := st.Load(context.Background())
	require.NoError(t, err)
	list, err := scheme.FromDocument(doc)
	require.NoError(t, err)
	return list
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestListCommand(t *testing.T) {
	w := newWorkspace(t, "templates.json")
	out, err := w.run(t, "list")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 5)
	assert.Equal(t, "1\tInteger\t1 schemes\tok", rows[0])
	assert.Equal(t, "5\tUUID\t1 schemes\tok", rows[4])
}

func TestValidateCommand(t *testing.T) {
	w := newWorkspace(t, "templates.json")
	out, err := w.run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "5 templates are valid\n", out)
}

func TestGenerateCommand_Seeded(t *testing.T) {
	w := newWorkspace(t, "templates.json")

	first, err := w.run(t, "generate", "Word", "-n", "4", "--seed", "7")
	require.NoError(t, err)
	assert.Len(t, lines(first), 4)

	second, err := w.run(t, "generate", "Word", "-n", "4", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateCommand_UsesConfigCount(t *testing.T) {
	w := newWorkspace(t, "templates.json")
	require.NoError(t, os.WriteFile(w.config, []byte("count = 3\nseed = 99\n"), 0o644))

	out, err := w.run(t, "generate", "Integer")
	require.NoError(t, err)
	assert.Len(t, lines(out), 3)

	again, err := w.run(t, "generate", "Integer")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestGenerateCommand_Errors(t *testing.T) {
	w := newWorkspace(t, "templates.json")

	_, err := w.run(t, "generate", "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")

	_, err = w.run(t, "generate", "Word", "-n", "-1")
	require.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	w := newWorkspace(t, "templates.db")

	out, err := w.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, w.config)

	cfg, err := config.Load(w.config)
	require.NoError(t, err)
	assert.Equal(t, w.store, cfg.Store)
	assert.Len(t, w.load(t).Templates, 5)

	_, err = w.run(t, "init")
	require.Error(t, err)

	_, err = w.run(t, "init", "--force")
	require.NoError(t, err)
}

func TestRowsAndMoveCommands(t *testing.T) {
	w := newWorkspace(t, "templates.json")

	out, err := w.run(t, "rows")
	require.NoError(t, err)
	rows := lines(out)
	require.Len(t, rows, 10)
	assert.Equal(t, "  0  Integer", rows[0])
	assert.Equal(t, "  1    Integer", rows[1])
	assert.Equal(t, "  2  Decimal", rows[2])

	// The Integer scheme moves forward onto the Decimal row and becomes its
	// first child.
	_, err = w.run(t, "move", "1", "2")
	require.NoError(t, err)

	list := w.load(t)
	assert.Empty(t, list.Templates[0].Schemes)
	require.Len(t, list.Templates[1].Schemes, 2)
	assert.Equal(t, scheme.KindInteger, list.Templates[1].Schemes[0].Kind())
	assert.Equal(t, scheme.KindDecimal, list.Templates[1].Schemes[1].Kind())

	_, err = w.run(t, "move", "2", "0")
	require.Error(t, err)
	_, err = w.run(t, "move", "x", "0")
	require.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	w := newWorkspace(t, "templates.json")
	records := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(records, []byte(`[
		{"id": 1, "name": "ada"},
		{"id": 7, "name": "grace"}
	]`), 0o644))

	out, err := w.run(t, "import", records, "--selector", "$[*]")
	require.NoError(t, err)
	assert.Equal(t, "users\n", out)

	out, err = w.run(t, "import", records, "--selector", "$[*]")
	require.NoError(t, err)
	assert.Equal(t, "users 2\n", out)

	list := w.load(t)
	require.Len(t, list.Templates, 7)
	assert.NotNil(t, list.TemplateByName("users 2"))

	gen, err := w.run(t, "generate", "users", "-n", "2", "--seed", "3")
	require.NoError(t, err)
	for _, line := range lines(gen) {
		assert.True(t, strings.HasPrefix(line, `{"id": `), line)
	}
}
