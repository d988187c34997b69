package spec

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// rawRecord carries the protocol-reserved keys of a definition file.
type rawRecord struct {
	Canon     string               `yaml:"canon"`
	Type      string               `yaml:"type"`
	Metadata  map[string]any       `yaml:"metadata"`
	Includes  []string             `yaml:"includes"`
	Schema    map[string]*FieldDef `yaml:"schema"`
	PageOrder *int                 `yaml:"page_order"`
}

// LoadRecord parses one definition file into a Record. The record's
// identity comes from the file's position below root.
func LoadRecord(root, path string) (*Record, error) {
	publisher, name, version, ok := pathIdentity(root, path)
	if !ok {
		return nil, fmt.Errorf("unexpected path shape: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition file: %w", err)
	}

	var raw rawRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse definition file: %w", err)
	}
	if raw.Canon == "" {
		return nil, fmt.Errorf("definition file missing canon tag")
	}
	if raw.Type != "" {
		if _, err := ParseRef(raw.Type); err != nil {
			return nil, fmt.Errorf("declared type: %w", err)
		}
	}

	// A second pass collects the non-reserved top-level keys.
	var all map[string]any
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse definition file: %w", err)
	}
	content := make(map[string]any)
	for k, v := range all {
		if !reservedKeys[k] {
			content[k] = v
		}
	}

	rec := &Record{
		Publisher: publisher,
		Name:      name,
		Version:   version,
		Canon:     raw.Canon,
		Type:      raw.Type,
		Includes:  raw.Includes,
		Metadata:  raw.Metadata,
		Schema:    raw.Schema,
		Content:   content,
		PageOrder: raw.PageOrder,
		Dir:       filepath.Dir(path),
	}

	if err := captureSourceFiles(rec, filepath.Base(path)); err != nil {
		return nil, err
	}
	return rec, nil
}

// captureSourceFiles reads every sibling of the definition file verbatim.
func captureSourceFiles(rec *Record, definitionName string) error {
	entries, err := os.ReadDir(rec.Dir)
	if err != nil {
		return fmt.Errorf("read record directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == definitionName {
			continue
		}
		data, err := os.ReadFile(filepath.Join(rec.Dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read source file %s: %w", e.Name(), err)
		}
		if rec.SourceFiles == nil {
			rec.SourceFiles = make(map[string]string)
		}
		rec.SourceFiles[e.Name()] = string(data)
	}
	return nil
}

// LoadAll discovers and parses every record below root. Parse failures
// are logged per file and excluded; only an unreadable root is an error.
func LoadAll(root string, logger *slog.Logger) ([]*Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := Discover(root, logger)
	if err != nil {
		return nil, fmt.Errorf("discover definition files: %w", err)
	}

	records := make([]*Record, 0, len(paths))
	for _, path := range paths {
		rec, err := LoadRecord(root, path)
		if err != nil {
			logger.Warn("skipping record", "path", path, "error", err.Error())
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
