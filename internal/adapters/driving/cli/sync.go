package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/doclane/doclane-cli/internal/adapters/driven/config/file"
	"github.com/doclane/doclane-cli/internal/adapters/driven/storage/sqlite"
	"github.com/doclane/doclane-cli/internal/adapters/driving/callback"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
	"github.com/doclane/doclane-cli/internal/core/services"
	"github.com/doclane/doclane-cli/internal/gitrepo"
	"github.com/doclane/doclane-cli/internal/logger"
	"github.com/doclane/doclane-cli/internal/normalisers/mdx"
	"github.com/doclane/doclane-cli/internal/remote"
)

// authWaitTimeout bounds how long the run waits for the browser callback.
const authWaitTimeout = 5 * time.Minute

var syncDir string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Authenticate and upload documentation files",
	Long: `Authenticates through your browser, discovers .mdx files in the local
git checkout, strips their markup, and uploads the result to Doclane in a
single request.

Full scans upload every tracked documentation file; incremental scans only
the files changed since the last synchronized point.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncDir, "dir", ".", "project directory (must be a git checkout)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	repo := gitrepo.New(syncDir)
	if err := repo.Validate(ctx); err != nil {
		return err
	}

	// Sync history is best-effort: without it incremental mode falls back
	// to the push reference.
	var history driven.SyncStore
	if store, err := sqlite.NewStore(filepath.Join(configStore.Dir(), "state.db")); err != nil {
		logger.Warn("sync history unavailable: %v", err)
	} else {
		history = store
		defer store.Close()
	}

	api := remote.NewClient(cfg.APIBaseURL)
	svc := services.NewSyncService(services.SyncConfig{
		Listener:     callback.NewServer(cfg.CallbackPort),
		OpenBrowser:  callback.OpenBrowser,
		Prompter:     newStdinPrompter(cmd),
		Repo:         repo,
		Normaliser:   mdx.New(),
		Submitter:    api,
		History:      history,
		AuthURL:      api.AuthURL(),
		PushRef:      gitrepo.PushRef,
		DocExtension: cfg.DocExtension,
		AuthTimeout:  authWaitTimeout,
	})

	cmd.Printf("Opening your browser to sign in: %s\n", api.AuthURL())
	cmd.Println("Waiting for authentication...")

	result, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	if !result.Submitted {
		cmd.Println("No documentation files to sync.")
		return nil
	}
	if result.FilesSkipped > 0 {
		cmd.Printf("Skipped %d unreadable files.\n", result.FilesSkipped)
	}
	cmd.Printf("Synchronised %d documentation files.\n", result.FilesSubmitted)
	return nil
}
