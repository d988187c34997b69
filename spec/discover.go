package spec

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// definitionPattern matches a definition file at any depth below the root.
const definitionPattern = "**/canon.{yaml,yml}"

// Discover walks the tree under root and returns the path of every
// definition file whose position satisfies the
// publisher/name/version/<file> contract. Files closer to the root are
// logged and skipped; the walk itself only fails if the root is unreadable.
func Discover(root string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("skipping unreadable path", "path", path, "error", err.Error())
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		ok, matchErr := doublestar.Match(definitionPattern, rel)
		if matchErr != nil || !ok {
			return nil
		}

		// The segments above the file must carry publisher/name/version.
		segments := strings.Split(rel, "/")
		if len(segments) < 4 {
			logger.Warn("skipping definition file with unexpected path shape",
				"path", path,
				"expected", "publisher/name/version/"+segments[len(segments)-1])
			return nil
		}

		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// pathIdentity derives (publisher, name, version) from a definition file
// path relative to the discovery root. Discover has already rejected
// paths that are too shallow; deeper nesting uses the last three
// directory segments.
func pathIdentity(root, path string) (publisher, name, version string, ok bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", "", "", false
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	if len(segments) < 4 {
		return "", "", "", false
	}
	dirs := segments[:len(segments)-1]
	return dirs[len(dirs)-3], dirs[len(dirs)-2], dirs[len(dirs)-1], true
}
