package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lessonindex/internal/config"
	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/manifest"
	"git.home.luguber.info/inful/lessonindex/internal/testutil"
)

// defaultsCLI points the config flag at a file that does not exist so the
// built-in defaults apply.
func defaultsCLI(t *testing.T) *CLI {
	t.Helper()
	return &CLI{Config: filepath.Join(t.TempDir(), "absent.yaml")}
}

func writeConfig(t *testing.T, format string, args ...any) *CLI {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(format, args...)), 0o600))
	return &CLI{Config: path}
}

func TestGenerateCmd_WritesManifest(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"01_intro/01_welcome.pdf": "pdf",
		"00_overview.md":          "# Overview\n",
	})

	var out bytes.Buffer
	cmd := &GenerateCmd{Root: root}
	require.NoError(t, cmd.Run(&Global{Out: &out}, defaultsCLI(t)))

	data, err := os.ReadFile(filepath.Join(root, config.DefaultOutputFile))
	require.NoError(t, err)
	m, err := manifest.FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultModuleID, m.ModuleID)
	require.Len(t, m.Sections, 2)
	assert.Equal(t, "intro", m.Sections[0].ID)
	assert.Equal(t, manifest.RootSectionID, m.Sections[1].ID)
	assert.Contains(t, out.String(), "2 sections, 2 items")
}

func TestGenerateCmd_MissingRootFails(t *testing.T) {
	cmd := &GenerateCmd{Root: filepath.Join(t.TempDir(), "nope")}
	err := cmd.Run(&Global{Out: &bytes.Buffer{}}, defaultsCLI(t))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.Equal(t, 1, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestGenerateCmd_InvalidConfigFails(t *testing.T) {
	cli := writeConfig(t, "module:\n  direction: sideways\n")
	err := (&GenerateCmd{Root: t.TempDir()}).Run(&Global{Out: &bytes.Buffer{}}, cli)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestHistoryCmd_ListsRecordedRuns(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"01_intro/01_welcome.md": "# Hi\n"})
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cli := writeConfig(t, "content:\n  root: %q\nhistory:\n  path: %q\n", root, dbPath)

	global := &Global{Out: &bytes.Buffer{}}
	require.NoError(t, (&GenerateCmd{}).Run(global, cli))
	require.NoError(t, (&GenerateCmd{}).Run(global, cli))

	var out bytes.Buffer
	require.NoError(t, (&HistoryCmd{Limit: 20}).Run(&Global{Out: &out}, cli))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "STARTED"))
	// Newest first: the second run found an identical manifest on disk.
	assert.Contains(t, lines[1], "false")
	assert.Contains(t, lines[2], "true")
}

func TestHistoryCmd_DisabledIsConfigError(t *testing.T) {
	err := (&HistoryCmd{Limit: 5}).Run(&Global{Out: &bytes.Buffer{}}, defaultsCLI(t))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestCheckCmd(t *testing.T) {
	t.Run("clean tree passes", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteTree(t, root, map[string]string{
			"01_intro/1_welcome.md": "![map](map.png)\n",
			"01_intro/map.png":      "png",
		})
		var out bytes.Buffer
		require.NoError(t, (&CheckCmd{Root: root, Format: "text"}).Run(&Global{Out: &out}, defaultsCLI(t)))
	})

	t.Run("broken image fails with json report", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteTree(t, root, map[string]string{
			"01_intro/1_welcome.md": "![map](missing.png)\n",
		})
		var out bytes.Buffer
		err := (&CheckCmd{Root: root, Format: "json"}).Run(&Global{Out: &out}, defaultsCLI(t))
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

		var report struct {
			Issues []struct {
				Path string `json:"path"`
				Rule string `json:"rule"`
			} `json:"issues"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Issues, 1)
		assert.Equal(t, "broken-image", report.Issues[0].Rule)
		assert.Equal(t, "01_intro/1_welcome.md", report.Issues[0].Path)
	})

	t.Run("ignored files are not checked", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteTree(t, root, map[string]string{
			config.DefaultIgnoreFile: "drafts/\n",
			"drafts/1_wip.md":        "[todo](nowhere.md)\n",
			"01_intro/1_welcome.md":  "# Fine\n",
		})
		require.NoError(t, (&CheckCmd{Root: root, Format: "text"}).Run(&Global{Out: &bytes.Buffer{}}, defaultsCLI(t)))
	})
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", config.DefaultConfigFile)
	cli := &CLI{Config: path}

	var out bytes.Buffer
	require.NoError(t, (&InitCmd{}).Run(&Global{Out: &out}, cli))
	assert.Contains(t, out.String(), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	err = (&InitCmd{}).Run(&Global{Out: &bytes.Buffer{}}, cli)
	require.Error(t, err)
	require.NoError(t, (&InitCmd{Force: true}).Run(&Global{Out: &bytes.Buffer{}}, cli))
}
