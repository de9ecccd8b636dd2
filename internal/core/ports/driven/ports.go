// Package driven defines the outbound interfaces the core services depend on.
// Adapters implement these; the services never import the adapters.
package driven

import (
	"context"

	"github.com/doclane/doclane-cli/internal/core/domain"
)

// Normaliser converts raw document text into plain prose.
type Normaliser interface {
	// Normalise is pure and deterministic. A failure means the file should
	// be dropped, never that the run should abort.
	Normalise(raw string) (string, error)
}

// Repository provides local version-control discovery and file access.
type Repository interface {
	// ListDocFiles returns every tracked file matching the extension filter.
	ListDocFiles(ctx context.Context, ext string) ([]string, error)

	// ChangedFiles returns the paths that differ between since and HEAD.
	ChangedFiles(ctx context.Context, since string) ([]string, error)

	// Head resolves the current HEAD commit.
	Head(ctx context.Context) (string, error)

	// ReadFile reads a repo-relative file from the working tree.
	ReadFile(path string) (string, error)
}

// AuthListener completes the out-of-band callback handshake. It produces at
// most one result per instance and must not be reused across runs.
type AuthListener interface {
	Start() error
	WaitForToken(ctx context.Context) (string, error)
	Stop() error
}

// BrowserOpener triggers the external browser-open side effect.
type BrowserOpener func(url string) error

// Prompter collects interactive input from the user.
type Prompter interface {
	ProjectID() (string, error)
	SecretKey() (string, error)
	ScanMode() (domain.ScanMode, error)
}

// Submitter delivers the final corpus to the processing service.
type Submitter interface {
	SubmitDocs(ctx context.Context, req domain.SyncRequest) error
}

// SyncStore persists sync history between runs.
type SyncStore interface {
	// LastSynced returns the most recent record for a project, or
	// domain.ErrNotFound when the project has never been synchronized.
	LastSynced(ctx context.Context, projectID string) (domain.SyncRecord, error)

	RecordSync(ctx context.Context, rec domain.SyncRecord) error
}
