package gitrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclane/doclane-cli/internal/core/domain"
)

// fakeRunner records invocations and replays canned outputs.
type fakeRunner struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func TestListDocFiles(t *testing.T) {
	runner := &fakeRunner{output: "docs/intro.mdx\ndocs/guides/setup.mdx\n"}
	repo := NewWithRunner("/proj", runner)

	files, err := repo.ListDocFiles(context.Background(), ".mdx")
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/intro.mdx", "docs/guides/setup.mdx"}, files)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"git", "ls-files", "--", "*.mdx"}, runner.calls[0])
}

func TestListDocFiles_Empty(t *testing.T) {
	runner := &fakeRunner{output: "\n"}
	repo := NewWithRunner("/proj", runner)

	files, err := repo.ListDocFiles(context.Background(), ".mdx")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListDocFiles_GitFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("fatal: not a git repository")}
	repo := NewWithRunner("/proj", runner)

	_, err := repo.ListDocFiles(context.Background(), ".mdx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git ls-files")
}

func TestChangedFiles(t *testing.T) {
	runner := &fakeRunner{output: "docs/changed.mdx\nREADME.md\n"}
	repo := NewWithRunner("/proj", runner)

	files, err := repo.ChangedFiles(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/changed.mdx", "README.md"}, files)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"git", "diff", "--name-only", "abc123..HEAD"}, runner.calls[0])
}

func TestChangedFiles_PushRef(t *testing.T) {
	runner := &fakeRunner{}
	repo := NewWithRunner("/proj", runner)

	_, err := repo.ChangedFiles(context.Background(), PushRef)
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "diff", "--name-only", "@{push}..HEAD"}, runner.calls[0])
}

func TestHead(t *testing.T) {
	runner := &fakeRunner{output: "deadbeef\n"}
	repo := NewWithRunner("/proj", runner)

	head, err := repo.Head(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", head)
}

func TestValidate(t *testing.T) {
	runner := &fakeRunner{output: "true\n"}
	require.NoError(t, NewWithRunner("/proj", runner).Validate(context.Background()))

	failing := &fakeRunner{err: errors.New("exit status 128")}
	err := NewWithRunner("/proj", failing).Validate(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a git repository"))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "a.mdx"), []byte("# Hi"), 0o644))

	repo := New(dir)

	content, err := repo.ReadFile("docs/a.mdx")
	require.NoError(t, err)
	assert.Equal(t, "# Hi", content)

	_, err = repo.ReadFile("docs/missing.mdx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFileAccess))
}
