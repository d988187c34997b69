package generate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencanon/canondocs/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Paths.SpecsDir = filepath.Join(t.TempDir(), "specs")
	cfg.Paths.SiteDir = filepath.Join(t.TempDir(), "site")
	cfg.Registry.CloneTimeout = time.Second
	return cfg
}

func TestGeneratorRun(t *testing.T) {
	cfg := testConfig(t)

	writeFile(t, filepath.Join(cfg.Paths.SpecsDir, "acme", "article", "1.0.0", "canon.yaml"), `canon: "1.0"
type: canon/type@1.0.0
metadata:
  title: Article
  description: A published article.
schema:
  title:
    type: string
    required: true
`)
	writeFile(t, filepath.Join(cfg.Paths.SpecsDir, "acme", "article", "2.0.0", "canon.yaml"), `canon: "1.0"
type: canon/type@1.0.0
metadata:
  title: Article
schema:
  title:
    type: string
    required: true
`)
	writeFile(t, filepath.Join(cfg.Paths.SpecsDir, "acme", "registry", "1.0.0", "canon.yml"), `canon: "1.0"
type: canon/type@1.0.0
metadata:
  title: Registry
page_order: 1
`)

	// nil fetcher: generate from the tree on disk.
	g := New(cfg, nil, nil)
	require.NoError(t, g.Run(context.Background()))

	// One document per version.
	for _, rel := range []string{
		filepath.Join("article", "1.0.0.md"),
		filepath.Join("article", "2.0.0.md"),
		filepath.Join("registry", "1.0.0.md"),
		"index.md",
		"sidebar.json",
	} {
		_, err := os.Stat(filepath.Join(cfg.Paths.SiteDir, rel))
		assert.NoError(t, err, rel)
	}

	older, err := os.ReadFile(filepath.Join(cfg.Paths.SiteDir, "article", "1.0.0.md"))
	require.NoError(t, err)
	assert.Contains(t, string(older), "This is an older version of `article`")

	index, err := os.ReadFile(filepath.Join(cfg.Paths.SiteDir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Latest version: [2.0.0](/article/2.0.0)")

	// Sidebar: Overview first, then registry (page_order 1), then article.
	sidebarData, err := os.ReadFile(filepath.Join(cfg.Paths.SiteDir, "sidebar.json"))
	require.NoError(t, err)
	var sidebar []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(sidebarData, &sidebar))
	require.Len(t, sidebar, 3)
	assert.Equal(t, "index", sidebar[0].ID)
	assert.Equal(t, "registry/1.0.0", sidebar[1].ID)
	assert.Equal(t, "article/2.0.0", sidebar[2].ID)
}

func TestGeneratorRun_MalformedRecordDoesNotAbort(t *testing.T) {
	cfg := testConfig(t)

	writeFile(t, filepath.Join(cfg.Paths.SpecsDir, "acme", "good", "1.0.0", "canon.yaml"), "canon: \"1.0\"\n")
	writeFile(t, filepath.Join(cfg.Paths.SpecsDir, "acme", "bad", "1.0.0", "canon.yaml"), "canon: [unclosed\n")

	g := New(cfg, nil, nil)
	require.NoError(t, g.Run(context.Background()))

	_, err := os.Stat(filepath.Join(cfg.Paths.SiteDir, "good", "1.0.0.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Paths.SiteDir, "bad"))
	assert.True(t, os.IsNotExist(err))
}

func TestGeneratorRun_NullSchemaEntry(t *testing.T) {
	cfg := testConfig(t)

	writeFile(t, filepath.Join(cfg.Paths.SpecsDir, "acme", "widget", "1.0.0", "canon.yaml"), `canon: "1.0"
schema:
  note:
`)

	g := New(cfg, nil, nil)
	require.NoError(t, g.Run(context.Background()))

	doc, err := os.ReadFile(filepath.Join(cfg.Paths.SiteDir, "widget", "1.0.0.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "| `note` |  | no |  |")
}

func TestGeneratorRun_EmptySourceStillWritesIndex(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Paths.SpecsDir, 0755))

	g := New(cfg, nil, nil)
	require.NoError(t, g.Run(context.Background()))

	_, err := os.Stat(filepath.Join(cfg.Paths.SiteDir, "index.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Paths.SiteDir, "sidebar.json"))
	assert.NoError(t, err)
}
