package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doclane/doclane-cli/internal/adapters/driven/config/file"
	"github.com/doclane/doclane-cli/internal/connectors/github"
	"github.com/doclane/doclane-cli/internal/logger"
	"github.com/doclane/doclane-cli/internal/remote"
)

var ciOpts struct {
	githubToken string
	projectID   string
	apiKey      string
	repo        string
	base        string
	head        string
	webhookURL  string
}

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Forward changed documentation files from a pipeline",
	Long: `Diffs two revisions through the GitHub API, fetches the changed .mdx
files from the head revision, and posts them to the configured webhook.

Intended for pipelines: all input comes from flags or environment
variables, nothing is prompted.`,
	RunE: runCI,
}

func init() {
	ciCmd.Flags().StringVar(&ciOpts.githubToken, "github-token", "", "GitHub API token (defaults to $GITHUB_TOKEN)")
	ciCmd.Flags().StringVar(&ciOpts.projectID, "project-id", "", "Doclane project identifier (defaults to $DOCLANE_PROJECT_ID)")
	ciCmd.Flags().StringVar(&ciOpts.apiKey, "api-key", "", "Doclane API key (defaults to $DOCLANE_API_KEY)")
	ciCmd.Flags().StringVar(&ciOpts.repo, "repo", "", "repository as owner/name (defaults to $GITHUB_REPOSITORY)")
	ciCmd.Flags().StringVar(&ciOpts.base, "base", "", "base revision of the comparison")
	ciCmd.Flags().StringVar(&ciOpts.head, "head", "", "head revision of the comparison")
	ciCmd.Flags().StringVar(&ciOpts.webhookURL, "webhook-url", "", "override the webhook endpoint")
	rootCmd.AddCommand(ciCmd)
}

// resolveCIInputs fills flag values from the environment and reports the
// first missing required input.
func resolveCIInputs() error {
	fallback := func(value *string, env string) {
		if *value == "" {
			*value = os.Getenv(env)
		}
	}
	fallback(&ciOpts.githubToken, "GITHUB_TOKEN")
	fallback(&ciOpts.projectID, "DOCLANE_PROJECT_ID")
	fallback(&ciOpts.apiKey, "DOCLANE_API_KEY")
	fallback(&ciOpts.repo, "GITHUB_REPOSITORY")

	required := []struct {
		value string
		name  string
	}{
		{ciOpts.githubToken, "--github-token (or $GITHUB_TOKEN)"},
		{ciOpts.projectID, "--project-id (or $DOCLANE_PROJECT_ID)"},
		{ciOpts.apiKey, "--api-key (or $DOCLANE_API_KEY)"},
		{ciOpts.repo, "--repo (or $GITHUB_REPOSITORY)"},
		{ciOpts.base, "--base"},
		{ciOpts.head, "--head"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("missing required input: %s", r.name)
		}
	}
	return nil
}

func runCI(cmd *cobra.Command, _ []string) error {
	if err := resolveCIInputs(); err != nil {
		return err
	}

	owner, name, ok := strings.Cut(ciOpts.repo, "/")
	if !ok || owner == "" || name == "" {
		return fmt.Errorf("invalid repository %q, expected owner/name", ciOpts.repo)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	webhook := ciOpts.webhookURL
	if webhook == "" {
		webhook = cfg.WebhookURL
	}

	ctx := context.Background()
	client := github.NewClient(ctx, ciOpts.githubToken, owner, name)
	source := github.FilterExtension(client, cfg.DocExtension)
	fetcher := github.NewFetcher(source, cfg.BatchSize, github.NewPacer(cfg.BatchPause()))

	logger.Debug("comparing %s..%s in %s", ciOpts.base, ciOpts.head, ciOpts.repo)
	files, err := fetcher.FetchChanged(ctx, ciOpts.base, ciOpts.head)
	if err != nil {
		return fmt.Errorf("fetch changed files: %w", err)
	}
	if len(files) == 0 {
		cmd.Println("No documentation changes to forward.")
		return nil
	}

	changed := make(map[string]string, len(files))
	for _, f := range files {
		changed[f.Path] = f.Content
	}

	api := remote.NewClient(cfg.APIBaseURL)
	payload := remote.WebhookPayload{
		ProjectID:    ciOpts.projectID,
		APIKey:       ciOpts.apiKey,
		ChangedFiles: changed,
	}
	if err := api.NotifyWebhook(ctx, webhook, payload); err != nil {
		return err
	}

	cmd.Printf("Forwarded %d changed documentation files.\n", len(files))
	return nil
}
