// Package registry fetches the published specification repository that
// the documentation pipeline ingests.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// allowedProtocols defines the git URL protocols that are permitted.
var allowedProtocols = map[string]bool{
	"https": true,
	"git":   true,
	"ssh":   true,
}

// validateGitURL validates that a git URL uses an allowed protocol.
func validateGitURL(rawURL string) error {
	// Handle SSH shorthand (git@github.com:owner/repo.git)
	if strings.HasPrefix(rawURL, "git@") {
		return nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !allowedProtocols[scheme] {
		return fmt.Errorf("protocol %q not allowed; must be https, git, or ssh", scheme)
	}

	return nil
}

// Fetcher acquires and refreshes the local copy of the specification
// repository.
type Fetcher struct {
	url     string
	branch  string
	timeout time.Duration
	depth   int
	logger  *slog.Logger
}

// NewFetcher creates a fetcher for the given repository.
func NewFetcher(url, branch string, timeout time.Duration, depth int, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		url:     url,
		branch:  branch,
		timeout: timeout,
		depth:   depth,
		logger:  logger,
	}
}

// Fetch ensures destPath holds a usable copy of the repository. An
// existing copy is refreshed with git pull; a refresh failure is a
// warning and the stale copy is used. Without a local copy a failed
// clone is fatal: the pipeline has nothing to regenerate from.
func (f *Fetcher) Fetch(ctx context.Context, destPath string) error {
	if hasLocalCopy(destPath) {
		if err := f.pull(ctx, destPath); err != nil {
			f.logger.Warn("failed to refresh specification source, using existing copy",
				"path", destPath, "error", err.Error())
		}
		f.logReady(ctx, destPath)
		return nil
	}

	if err := validateGitURL(f.url); err != nil {
		return fmt.Errorf("invalid registry URL: %w", err)
	}
	if err := f.clone(ctx, destPath); err != nil {
		return fmt.Errorf("fetch specification source: %w", err)
	}
	f.logReady(ctx, destPath)
	return nil
}

// logReady reports the commit the run will generate from. The SHA is
// informational; a copy whose HEAD cannot be read still generates.
func (f *Fetcher) logReady(ctx context.Context, destPath string) {
	commit, err := f.HeadCommit(ctx, destPath)
	if err != nil {
		f.logger.Debug("could not read specification source HEAD",
			"path", destPath, "error", err.Error())
		return
	}
	f.logger.Info("specification source ready", "path", destPath, "commit", commit)
}

// hasLocalCopy reports whether destPath looks like a previously fetched
// repository.
func hasLocalCopy(destPath string) bool {
	info, err := os.Stat(filepath.Join(destPath, ".git"))
	return err == nil && info.IsDir()
}

// clone clones the repository to the destination path.
func (f *Fetcher) clone(ctx context.Context, destPath string) error {
	cloneCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := []string{"clone"}

	if f.branch != "" {
		args = append(args, "--branch", f.branch)
	}

	if f.depth > 0 {
		args = append(args, "--depth", fmt.Sprintf("%d", f.depth))
	}

	args = append(args, f.url, destPath)

	cmd := exec.CommandContext(cloneCtx, "git", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone failed: %w: %s", err, string(output))
	}

	return nil
}

// pull refreshes an existing local copy.
func (f *Fetcher) pull(ctx context.Context, destPath string) error {
	pullCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(pullCtx, "git", "pull")
	cmd.Dir = destPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git pull failed: %w: %s", err, string(output))
	}
	return nil
}

// HeadCommit returns the HEAD commit SHA of the local copy.
func (f *Fetcher) HeadCommit(ctx context.Context, destPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = destPath
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
