package hosting

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/projflow/projflow/internal/commit"
)

// ClientConfig holds the configuration for creating a GitHub API client.
type ClientConfig struct {
	// Token is a GitHub personal access token.
	// Falls back to GITHUB_TOKEN env var if empty.
	Token string

	// AppID is the GitHub App ID for app authentication.
	// Falls back to GH_APP_ID env var if zero.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	// Falls back to GH_APP_PRIVATE_KEY env var if empty.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	// Falls back to GITHUB_API_URL env var if empty.
	BaseURL string
}

// Compile-time check that GitHub implements Hosting.
var _ Hosting = (*GitHub)(nil)

// GitHub publishes releases through the GitHub API.
type GitHub struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewGitHub creates the GitHub hosting collaborator for the repository
// behind remoteURL. Returns (nil, nil) when the remote is not a GitHub
// repository or no credentials are available; callers fall back to
// Inactive in that case.
func NewGitHub(remoteURL string, cfg ClientConfig) (*GitHub, error) {
	owner, repo, ok := ParseRemote(remoteURL)
	if !ok {
		return nil, nil
	}

	client, err := newClient(cfg, owner)
	if err != nil {
		if errors.Is(err, errNoCredentials) {
			return nil, nil
		}
		return nil, err
	}

	return &GitHub{client: client, owner: owner, repo: repo}, nil
}

func (g *GitHub) IsActive() bool {
	return g != nil && g.client != nil
}

// AddRelease creates a release (draft or final) for the tag recorded in
// the setup, with the changelog as its body.
func (g *GitHub) AddRelease(ctx context.Context, changelog string, setup commit.LogSetup, draft bool) (Result, error) {
	release := &gh.RepositoryRelease{
		TagName: gh.String(setup.CurrTag),
		Name:    gh.String(setup.CurrTag),
		Body:    gh.String(changelog),
		Draft:   gh.Bool(draft),
	}

	created, _, err := g.client.Repositories.CreateRelease(ctx, g.owner, g.repo, release)
	if err != nil {
		return Result{}, fmt.Errorf("creating release %s: %w", setup.CurrTag, err)
	}

	var result Result
	if draft && created.GetHTMLURL() != "" {
		result.DraftURL = created.GetHTMLURL()
	}
	return result, nil
}

// ParseRemote extracts owner and repository from a GitHub remote URL,
// accepting both SSH (git@github.com:owner/repo.git) and HTTPS forms.
func ParseRemote(remoteURL string) (owner, repo string, ok bool) {
	var path string
	switch {
	case strings.HasPrefix(remoteURL, "git@github.com:"):
		path = strings.TrimPrefix(remoteURL, "git@github.com:")
	case strings.HasPrefix(remoteURL, "https://github.com/"):
		path = strings.TrimPrefix(remoteURL, "https://github.com/")
	case strings.HasPrefix(remoteURL, "ssh://git@github.com/"):
		path = strings.TrimPrefix(remoteURL, "ssh://git@github.com/")
	default:
		return "", "", false
	}

	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

var errNoCredentials = errors.New("no GitHub credentials available")

// newClient creates an authenticated GitHub API client.
// Auth resolution order: Token flag → GITHUB_TOKEN env → App credentials.
func newClient(cfg ClientConfig, owner string) (*gh.Client, error) {
	baseURL := resolveString(cfg.BaseURL, "GITHUB_API_URL")

	token := resolveString(cfg.Token, "GITHUB_TOKEN")
	if token != "" {
		return newTokenClient(token, baseURL)
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	appKey := resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY")

	if appID != 0 && appKey != "" {
		return newAppClient(appID, appKey, owner, baseURL)
	}

	return nil, errNoCredentials
}

func newTokenClient(token, baseURL string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	if baseURL != "" {
		return gh.NewClient(httpClient).WithEnterpriseURLs(baseURL, baseURL)
	}
	return gh.NewClient(httpClient), nil
}

func newAppClient(appID int64, keyPath, owner, baseURL string) (*gh.Client, error) {
	appTransport, err := ghinstallation.NewAppsTransportKeyFromFile(http.DefaultTransport, appID, keyPath)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		appTransport.BaseURL = baseURL
	}

	appClient := gh.NewClient(&http.Client{Transport: appTransport})
	if baseURL != "" {
		appClient, err = appClient.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise URLs: %w", err)
		}
	}

	installation, _, err := appClient.Apps.FindOrganizationInstallation(context.Background(), owner)
	if err != nil {
		installation, _, err = appClient.Apps.FindUserInstallation(context.Background(), owner)
		if err != nil {
			return nil, fmt.Errorf("finding app installation for %s: %w", owner, err)
		}
	}

	transport := ghinstallation.NewFromAppsTransport(appTransport, installation.GetID())
	client := gh.NewClient(&http.Client{Transport: transport})
	if baseURL != "" {
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise URLs: %w", err)
		}
	}
	return client, nil
}

func resolveString(value, envVar string) string {
	if value != "" {
		return value
	}
	return os.Getenv(envVar)
}
