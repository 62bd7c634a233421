package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/ariel-frischer/draft-release/internal/notes"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	perPage        = 100
	maxPages       = 50
)

var nextLink = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// Client talks to the REST API on behalf of one repository.
type Client struct {
	baseURL    string
	owner      string
	repo       string
	token      string
	configPath string
	userAgent  string
	log        logr.Logger

	transport    *http.Client
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a GitHub Enterprise or test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithConfigPath sets the release.yml path GitHub uses when generating notes.
func WithConfigPath(path string) Option {
	return func(c *Client) { c.configPath = path }
}

// WithHTTPClient sets the transport the retrying client wraps.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.transport = hc }
}

// WithLogger sets the logger used for requests and retries.
func WithLogger(log logr.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithRetry sets how often and how long transient failures are retried.
func WithRetry(max int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = max
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a client for repository, given as "owner/name".
func NewClient(repository string, opts ...Option) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid repository %q: expected owner/name", repository)
	}

	c := &Client{
		baseURL:      DefaultBaseURL,
		owner:        owner,
		repo:         repo,
		userAgent:    "draft-release",
		log:          logr.Discard(),
		retryMax:     3,
		retryWaitMin: time.Second,
		retryWaitMax: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = c.retryMax
	rc.RetryWaitMin = c.retryWaitMin
	rc.RetryWaitMax = c.retryWaitMax
	rc.Logger = retryLogger{log: c.log.WithName("http")}
	rc.ErrorHandler = lastResponse
	if c.transport != nil {
		rc.HTTPClient = c.transport
	}
	c.http = rc.StandardClient()

	return c, nil
}

// Repository returns "owner/name".
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

func (c *Client) repoURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s%s", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), path)
}

// ListReleases returns every release of the repository, following
// pagination.
func (c *Client) ListReleases(ctx context.Context) ([]Release, error) {
	var all []Release
	next := c.repoURL(fmt.Sprintf("/releases?per_page=%d", perPage))

	for page := 0; next != "" && page < maxPages; page++ {
		var batch []Release
		header, err := c.do(ctx, http.MethodGet, next, nil, &batch)
		if err != nil {
			return nil, fmt.Errorf("listing releases: %w", err)
		}
		all = append(all, batch...)
		next = nextPage(header.Get("Link"))
	}

	c.log.V(1).Info("listed releases", "count", len(all))
	return all, nil
}

// GenerateNotes asks GitHub to render release notes for the changes
// between rc.LatestTag and rc.NextTag. The previous tag is omitted when
// there is no prior release, so the notes cover the whole history.
func (c *Client) GenerateNotes(ctx context.Context, rc notes.ReleaseContext) (string, error) {
	req := generateNotesRequest{
		TagName:               rc.NextTag,
		TargetCommitish:       rc.Branch,
		ConfigurationFilePath: c.configPath,
	}
	if rc.HasPrevious() {
		req.PreviousTagName = rc.LatestTag
	}

	var resp generateNotesResponse
	if _, err := c.do(ctx, http.MethodPost, c.repoURL("/releases/generate-notes"), req, &resp); err != nil {
		return "", fmt.Errorf("generating release notes for %s: %w", rc.NextTag, err)
	}
	return resp.Body, nil
}

// CreateRelease creates a release.
func (c *Client) CreateRelease(ctx context.Context, r ReleaseRequest) (*Release, error) {
	var out Release
	if _, err := c.do(ctx, http.MethodPost, c.repoURL("/releases"), r, &out); err != nil {
		return nil, fmt.Errorf("creating release %s: %w", r.TagName, err)
	}
	return &out, nil
}

// UpdateRelease replaces the fields of release id.
func (c *Client) UpdateRelease(ctx context.Context, id int64, r ReleaseRequest) (*Release, error) {
	var out Release
	if _, err := c.do(ctx, http.MethodPatch, c.repoURL(fmt.Sprintf("/releases/%d", id)), r, &out); err != nil {
		return nil, fmt.Errorf("updating release %d: %w", id, err)
	}
	return &out, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, u string, body, out any) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.V(1).Info("request", "method", method, "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Message
			apiErr.DocumentationURL = eb.DocumentationURL
		}
		return nil, apiErr
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.Header, nil
}

// lastResponse hands the final response back to the caller once retries are
// exhausted so the API error message can be decoded.
func lastResponse(resp *http.Response, err error, attempts int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, fmt.Errorf("giving up after %d attempt(s): %w", attempts, err)
}

// nextPage extracts the rel="next" URL from a Link header.
func nextPage(link string) string {
	if m := nextLink.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// retryLogger adapts logr to retryablehttp.LeveledLogger.
type retryLogger struct {
	log logr.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.V(1).Info(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(2).Info(msg, keysAndValues...)
}
