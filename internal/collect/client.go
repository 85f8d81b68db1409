package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/smy-101/gmarket/internal/types"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultRawBaseURL = "https://raw.githubusercontent.com"

	// packagesRoot is the directory of the marketplace repository that
	// holds one subdirectory per published package.
	packagesRoot = "packages"
)

// Client talks to the GitHub API and raw-content host for one marketplace
// repository.
type Client struct {
	restyClient *resty.Client
	token       string
	owner       string
	repo        string
	branch      string
	apiBase     string
	rawBase     string
}

// NewClient creates a client for the marketplace repository named in opts.
// The token can be empty for anonymous, lower-rate-limit access.
func NewClient(opts Options) *Client {
	client := resty.New()

	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	if opts.Token != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", opts.Token))
	}
	if opts.Proxy != "" {
		client.SetProxy(opts.Proxy)
	}

	client.SetHeader("User-Agent", "gmarket-cli/1.0")

	return &Client{
		restyClient: client,
		token:       opts.Token,
		owner:       opts.Owner,
		repo:        opts.Repo,
		branch:      opts.Branch,
		apiBase:     defaultAPIBaseURL,
		rawBase:     defaultRawBaseURL,
	}
}

// SetAPIBaseURL overrides the GitHub API host.
// This method is intended for testing purposes only.
func (c *Client) SetAPIBaseURL(url string) {
	c.apiBase = strings.TrimSuffix(url, "/")
}

// SetRawBaseURL overrides the raw-content host.
// This method is intended for testing purposes only.
func (c *Client) SetRawBaseURL(url string) {
	c.rawBase = strings.TrimSuffix(url, "/")
}

// ListPackages fetches the package directory listing of the marketplace
// repository. The listing is returned verbatim; filtering to directory
// entries is the collector's job.
func (c *Client) ListPackages(ctx context.Context) ([]types.GitHubContent, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBase, c.owner, c.repo, packagesRoot)

	var entries []types.GitHubContent
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetResult(&entries).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("package listing request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		body := resp.String()
		if body == "" {
			body = "<no response body>"
		}
		catErr := &CatalogError{StatusCode: resp.StatusCode(), Body: body}

		if resp.StatusCode() == http.StatusForbidden && strings.Contains(body, "API rate limit exceeded") {
			return nil, fmt.Errorf("%w. Please configure a GitHub Token via 'gmarket config set github_token <token>'", catErr)
		}
		return nil, catErr
	}

	return entries, nil
}

// FetchRaw downloads one file from a package's directory on the raw host.
func (c *Client) FetchRaw(ctx context.Context, pkg, file string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s/%s/%s",
		c.rawBase, c.owner, c.repo, c.branch, packagesRoot, pkg, file)

	resp, err := c.restyClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("download returned %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
