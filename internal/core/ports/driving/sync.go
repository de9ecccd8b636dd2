// Package driving defines the inbound interfaces exposed by the core services.
package driving

import "context"

// SyncResult summarises one completed run.
type SyncResult struct {
	// FilesSubmitted is the number of files in the submission payload.
	FilesSubmitted int

	// FilesSkipped counts files dropped by read or normalization failures.
	FilesSkipped int

	// Submitted is false when discovery found nothing and no request was made.
	Submitted bool
}

// SyncOrchestrator runs the full authenticate-discover-normalize-submit flow.
type SyncOrchestrator interface {
	Run(ctx context.Context) (SyncResult, error)
}
