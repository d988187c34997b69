// Package generate orchestrates the documentation pipeline: fetch the
// specification source, ingest records, and write the site input tree.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/opencanon/canondocs/config"
	"github.com/opencanon/canondocs/registry"
	"github.com/opencanon/canondocs/render"
	"github.com/opencanon/canondocs/spec"
)

// Generator runs the full pipeline against configured directories.
type Generator struct {
	cfg     *config.Config
	fetcher *registry.Fetcher
	logger  *slog.Logger
}

// New creates a generator. A nil fetcher skips source acquisition and
// generates from whatever is already on disk (used by watch mode and
// tests).
func New(cfg *config.Config, fetcher *registry.Fetcher, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, fetcher: fetcher, logger: logger}
}

// Run executes one full generation pass. Per-record failures are logged
// and skipped; only source acquisition (without a prior local copy) and
// output-tree write failures are fatal.
func (g *Generator) Run(ctx context.Context) error {
	logger := g.logger.With("run_id", uuid.NewString())

	if g.fetcher != nil {
		if err := g.fetcher.Fetch(ctx, g.cfg.Paths.SpecsDir); err != nil {
			return err
		}
	}

	records, err := spec.LoadAll(g.cfg.Paths.SpecsDir, logger)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Warn("no specification records found", "specs_dir", g.cfg.Paths.SpecsDir)
	}

	groups := spec.GroupRecords(records)
	idx := spec.NewTypeIndex(records)

	if err := os.MkdirAll(g.cfg.Paths.SiteDir, 0755); err != nil {
		return fmt.Errorf("create site directory: %w", err)
	}

	rendered := 0
	for _, group := range groups {
		for _, rec := range group.Records {
			if err := g.writeDocument(rec, group, idx); err != nil {
				logger.Warn("skipping document",
					"name", rec.Name, "version", rec.Version, "error", err.Error())
				continue
			}
			rendered++
		}
	}

	indexPath := filepath.Join(g.cfg.Paths.SiteDir, "index.md")
	if err := os.WriteFile(indexPath, []byte(render.Index(groups)), 0644); err != nil {
		return fmt.Errorf("write index document: %w", err)
	}

	sidebar, err := render.SidebarJSON(groups)
	if err != nil {
		return err
	}
	sidebarPath := filepath.Join(g.cfg.Paths.SiteDir, "sidebar.json")
	if err := os.WriteFile(sidebarPath, sidebar, 0644); err != nil {
		return fmt.Errorf("write sidebar: %w", err)
	}

	logger.Info("documentation generated",
		"groups", len(groups),
		"documents", rendered,
		"site_dir", g.cfg.Paths.SiteDir)
	return nil
}

// writeDocument renders one record version to <site>/<name>/<version>.md.
func (g *Generator) writeDocument(rec *spec.Record, group *spec.Group, idx *spec.TypeIndex) error {
	doc, err := render.Document(rec, group, idx)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	dir := filepath.Join(g.cfg.Paths.SiteDir, rec.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}

	path := filepath.Join(dir, rec.Version+".md")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
