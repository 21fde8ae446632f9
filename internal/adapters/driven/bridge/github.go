package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sift/internal/core/domain"
)

const (
	githubRate     = 1.2
	githubMaxRepos = 50
	githubMaxFiles = 2000
)

// githubLister lists files in the repositories the token can see, newest
// repositories first.
type githubLister struct {
	baseURL  string // API root override, empty for api.github.com
	limiter  *rateLimiter
	maxRepos int
	maxFiles int
}

func newGitHubLister() *githubLister {
	return &githubLister{
		limiter:  newRateLimiter(githubRate, 1),
		maxRepos: githubMaxRepos,
		maxFiles: githubMaxFiles,
	}
}

func (l *githubLister) client(ctx context.Context, token string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := gh.NewClient(oauth2.NewClient(ctx, ts))
	if l.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(l.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: base url: %w", err)
		}
		c.BaseURL = u
	}
	return c, nil
}

func (l *githubLister) list(ctx context.Context, token string) ([]domain.RemoteFile, error) {
	client, err := l.client(ctx, token)
	if err != nil {
		return nil, err
	}

	repos, err := l.repos(ctx, client)
	if err != nil {
		return nil, err
	}

	var files []domain.RemoteFile
	for _, repo := range repos {
		branch := repo.GetDefaultBranch()
		if branch == "" {
			continue
		}

		if err := l.limiter.wait(ctx); err != nil {
			return files, err
		}
		tree, resp, err := client.Git.GetTree(ctx, repo.GetOwner().GetLogin(), repo.GetName(), branch, true)
		l.observe(resp)
		if err != nil {
			if isEmptyRepo(err) {
				continue
			}
			return files, wrapGitHubError(err, "get tree "+repo.GetFullName())
		}

		for _, entry := range tree.Entries {
			if entry.GetType() != "blob" {
				continue
			}
			p := entry.GetPath()
			files = append(files, domain.RemoteFile{
				ID:      entry.GetSHA(),
				Name:    path.Base(p),
				Path:    repo.GetFullName() + "/" + p,
				URL:     fmt.Sprintf("%s/blob/%s/%s", repo.GetHTMLURL(), branch, p),
				Service: domain.IntegrationGitHub,
			})
			if len(files) >= l.maxFiles {
				return files, nil
			}
		}
	}
	return files, nil
}

func (l *githubLister) repos(ctx context.Context, client *gh.Client) ([]*gh.Repository, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Visibility:  "all",
		Affiliation: "owner,collaborator,organization_member",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var all []*gh.Repository
	for {
		if err := l.limiter.wait(ctx); err != nil {
			return nil, err
		}
		repos, resp, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
		l.observe(resp)
		if err != nil {
			return nil, wrapGitHubError(err, "list repos")
		}

		all = append(all, repos...)
		if len(all) >= l.maxRepos {
			return all[:l.maxRepos], nil
		}
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func (l *githubLister) observe(resp *gh.Response) {
	if resp != nil {
		l.limiter.observe(resp.Response)
	}
}

// isEmptyRepo reports the 409 GitHub answers for a repository with no commits.
func isEmptyRepo(err error) bool {
	var er *gh.ErrorResponse
	return errors.As(err, &er) && er.Response != nil && er.Response.StatusCode == http.StatusConflict
}

func wrapGitHubError(err error, op string) error {
	var er *gh.ErrorResponse
	if errors.As(err, &er) && er.Response != nil && er.Response.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("github: %s: %w", op, domain.ErrNotAuthenticated)
	}
	var rl *gh.RateLimitError
	if errors.As(err, &rl) {
		return fmt.Errorf("github: %s: rate limit exceeded, resets at %s", op, rl.Rate.Reset.Format("15:04:05"))
	}
	return fmt.Errorf("github: %s: %w", op, err)
}
