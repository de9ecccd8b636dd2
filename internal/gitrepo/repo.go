// Package gitrepo discovers documentation files through the local git
// checkout by shelling out to the git binary.
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
)

// Ensure Repo implements the interface.
var _ driven.Repository = (*Repo)(nil)

// PushRef is the fallback comparison point when no sync history exists.
const PushRef = "@{push}"

// CommandRunner executes commands within a working directory.
// Injected in tests; production code shells out.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Repo wraps git operations for one working directory.
type Repo struct {
	dir    string
	runner CommandRunner
}

// New constructs a Repo that shells out to git.
func New(dir string) *Repo {
	return &Repo{dir: dir, runner: execRunner{}}
}

// NewWithRunner injects a custom command runner, used mainly for tests.
func NewWithRunner(dir string, runner CommandRunner) *Repo {
	return &Repo{dir: dir, runner: runner}
}

// Validate confirms the directory is inside a git work tree.
func (r *Repo) Validate(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, r.dir, "git", "rev-parse", "--is-inside-work-tree"); err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}
	return nil
}

// ListDocFiles returns every tracked file matching the extension filter, in
// git's listing order.
func (r *Repo) ListDocFiles(ctx context.Context, ext string) ([]string, error) {
	out, err := r.runner.Run(ctx, r.dir, "git", "ls-files", "--", "*"+ext)
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}
	return splitLines(out), nil
}

// ChangedFiles returns the paths that differ between since and HEAD.
func (r *Repo) ChangedFiles(ctx context.Context, since string) ([]string, error) {
	out, err := r.runner.Run(ctx, r.dir, "git", "diff", "--name-only", since+"..HEAD")
	if err != nil {
		return nil, fmt.Errorf("git diff %s..HEAD: %w", since, err)
	}
	return splitLines(out), nil
}

// Head resolves the current HEAD commit.
func (r *Repo) Head(ctx context.Context) (string, error) {
	out, err := r.runner.Run(ctx, r.dir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ReadFile reads a repo-relative file from the working tree.
func (r *Repo) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, path))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrFileAccess, path, err)
	}
	return string(data), nil
}

func splitLines(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		paths = append(paths, trimmed)
	}
	return paths
}
