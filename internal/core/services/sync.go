// Package services contains the application services driving the sync flow.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
	"github.com/doclane/doclane-cli/internal/core/ports/driving"
	"github.com/doclane/doclane-cli/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncOrchestrator = (*SyncService)(nil)

// SyncConfig carries the collaborators and settings for one sync run.
type SyncConfig struct {
	Listener    driven.AuthListener
	OpenBrowser driven.BrowserOpener
	Prompter    driven.Prompter
	Repo        driven.Repository
	Normaliser  driven.Normaliser
	Submitter   driven.Submitter

	// History is optional; without it incremental mode falls back to the
	// version-control push reference.
	History driven.SyncStore

	// AuthURL is the page the browser opens to start the handshake.
	AuthURL string

	// PushRef is the fallback comparison point for incremental discovery.
	PushRef string

	// DocExtension filters discovered files. Empty selects the default.
	DocExtension string

	// AuthTimeout bounds the wait for the browser callback. Zero means
	// wait until the surrounding context expires.
	AuthTimeout time.Duration
}

// SyncService sequences the interactive sync run: authenticate, collect
// input, discover, normalize, submit. One instance serves one run.
type SyncService struct {
	cfg SyncConfig
}

// NewSyncService creates the orchestrator.
func NewSyncService(cfg SyncConfig) *SyncService {
	if cfg.DocExtension == "" {
		cfg.DocExtension = domain.DocExtension
	}
	return &SyncService{cfg: cfg}
}

// Run executes the full flow. Fatal errors abort the run; per-file read and
// normalization failures are logged and the file is dropped.
func (s *SyncService) Run(ctx context.Context) (driving.SyncResult, error) {
	if err := s.cfg.Listener.Start(); err != nil {
		return driving.SyncResult{}, err
	}
	defer func() { _ = s.cfg.Listener.Stop() }()

	if err := s.cfg.OpenBrowser(s.cfg.AuthURL); err != nil {
		logger.Warn("could not open browser, visit %s manually: %v", s.cfg.AuthURL, err)
	}

	token, err := s.waitForToken(ctx)
	if err != nil {
		return driving.SyncResult{}, fmt.Errorf("authentication: %w", err)
	}
	logger.Debug("callback token received")

	projectID, err := s.requiredInput("project id", s.cfg.Prompter.ProjectID)
	if err != nil {
		return driving.SyncResult{}, err
	}
	secretKey, err := s.requiredInput("secret key", s.cfg.Prompter.SecretKey)
	if err != nil {
		return driving.SyncResult{}, err
	}
	mode, err := s.cfg.Prompter.ScanMode()
	if err != nil {
		return driving.SyncResult{}, err
	}

	paths, err := s.discover(ctx, mode, projectID)
	if err != nil {
		return driving.SyncResult{}, fmt.Errorf("discovery: %w", err)
	}
	if len(paths) == 0 {
		logger.Info("no documentation files to sync")
		return driving.SyncResult{}, nil
	}
	logger.Debug("discovered %d files (%s scan)", len(paths), mode)

	files, skipped := s.collect(paths)

	req := domain.SyncRequest{
		APIKey:    secretKey,
		ProjectID: projectID,
		Token:     token,
		Files:     files,
	}
	if err := s.cfg.Submitter.SubmitDocs(ctx, req); err != nil {
		return driving.SyncResult{}, err
	}

	s.recordSync(ctx, projectID)

	return driving.SyncResult{
		FilesSubmitted: len(files),
		FilesSkipped:   skipped,
		Submitted:      true,
	}, nil
}

func (s *SyncService) waitForToken(ctx context.Context) (string, error) {
	if s.cfg.AuthTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AuthTimeout)
		defer cancel()
	}
	return s.cfg.Listener.WaitForToken(ctx)
}

func (s *SyncService) requiredInput(name string, collect func() (string, error)) (string, error) {
	value, err := collect()
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInputRequired, name)
	}
	return value, nil
}

// discover lists the candidate files for the chosen scan mode.
func (s *SyncService) discover(ctx context.Context, mode domain.ScanMode, projectID string) ([]string, error) {
	if mode == domain.ScanFull {
		return s.cfg.Repo.ListDocFiles(ctx, s.cfg.DocExtension)
	}

	since := s.cfg.PushRef
	if s.cfg.History != nil {
		rec, err := s.cfg.History.LastSynced(ctx, projectID)
		switch {
		case err == nil:
			since = rec.CommitSHA
		case !errors.Is(err, domain.ErrNotFound):
			logger.Warn("sync history unavailable: %v", err)
		}
	}

	paths, err := s.cfg.Repo.ChangedFiles(ctx, since)
	if err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasSuffix(p, s.cfg.DocExtension) {
			docs = append(docs, p)
		}
	}
	return docs, nil
}

// collect reads and normalizes each discovered file, isolating failures.
func (s *SyncService) collect(paths []string) ([]domain.RepositoryFile, int) {
	files := make([]domain.RepositoryFile, 0, len(paths))
	skipped := 0

	for _, path := range paths {
		raw, err := s.cfg.Repo.ReadFile(path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			skipped++
			continue
		}
		content, err := s.cfg.Normaliser.Normalise(raw)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			skipped++
			continue
		}
		files = append(files, domain.RepositoryFile{Path: path, Content: content})
	}
	return files, skipped
}

// recordSync stores the synchronized point. Failure here never fails a run
// that already submitted successfully.
func (s *SyncService) recordSync(ctx context.Context, projectID string) {
	if s.cfg.History == nil {
		return
	}

	head, err := s.cfg.Repo.Head(ctx)
	if err != nil {
		logger.Warn("could not resolve HEAD for sync history: %v", err)
		return
	}
	rec := domain.SyncRecord{ProjectID: projectID, CommitSHA: head}
	if err := s.cfg.History.RecordSync(ctx, rec); err != nil {
		logger.Warn("could not record sync point: %v", err)
	}
}
