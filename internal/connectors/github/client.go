// Package github implements the pipeline-variant diff fetcher against the
// GitHub REST API.
package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the HTTP request timeout for API calls.
const DefaultTimeout = 30 * time.Second

// Client wraps go-github for a single repository.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// NewClient creates a GitHub API client with a static access token.
// Works for both PAT and installation tokens.
func NewClient(ctx context.Context, token, owner, repo string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{gh: gh.NewClient(tc), owner: owner, repo: repo}
}

// ChangedPaths returns the files that differ between base and head, in the
// order the comparison API lists them. Duplicates in the listing are
// collapsed so a path never appears twice downstream.
func (c *Client) ChangedPaths(ctx context.Context, base, head string) ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})

	opts := &gh.ListOptions{PerPage: 100}
	for {
		cmp, resp, err := c.gh.Repositories.CompareCommits(ctx, c.owner, c.repo, base, head, opts)
		if err != nil {
			return nil, wrapError(err, "compare revisions")
		}

		for _, f := range cmp.Files {
			path := f.GetFilename()
			if path == "" {
				continue
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return paths, nil
}

// Content fetches the decoded content of path at ref.
func (c *Client) Content(ctx context.Context, path, ref string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path, opts)
	if err != nil {
		return "", wrapError(err, "get contents")
	}
	if content == nil {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return decoded, nil
}
