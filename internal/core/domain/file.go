// Package domain holds the core types shared across the sync pipeline.
package domain

import "time"

// ScanMode selects how documentation files are discovered.
type ScanMode string

const (
	// ScanFull discovers every tracked documentation file.
	ScanFull ScanMode = "full"

	// ScanIncremental discovers only files changed since the last
	// synchronized point.
	ScanIncremental ScanMode = "incremental"
)

// DocExtension is the default suffix filter applied during discovery.
const DocExtension = ".mdx"

// RepositoryFile is a repo-relative document. Path is the identity; within
// one run a path appears at most once in any file collection.
type RepositoryFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// SyncRequest is the single outbound submission payload. It is constructed
// once and never mutated afterwards.
type SyncRequest struct {
	APIKey    string           `json:"apiKey"`
	ProjectID string           `json:"projectId"`
	Token     string           `json:"token"`
	Files     []RepositoryFile `json:"files"`
}

// SyncRecord is one entry in the sync history: the commit a project was
// last synchronized at.
type SyncRecord struct {
	ID        string
	ProjectID string
	CommitSHA string
	SyncedAt  time.Time
}
