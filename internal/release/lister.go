// Package release lists the published releases of the upstream Typst
// repository.
//
// Two listing paths exist, selected by credential presence:
//   - With a token, the GitHub API client pages through every release and
//     concatenates the results in server order.
//   - Without one, a single unauthenticated fetch of the releases resource is
//     performed. Unauthenticated calls share the per-IP rate limit with every
//     other job on the runner, so a malformed response is reported as a
//     probable rate-limit hit.
//
// There is no retry on either path. Release metadata has no fallback data
// source, so a failure here ends the run.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
)

// Upstream project coordinates. The tool this action installs is fixed.
const (
	ProjectOwner = "typst"
	ProjectRepo  = "typst"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	perPage           = 100
	// maxResponseSize caps the unauthenticated response body read (10MB).
	maxResponseSize = 10 * 1024 * 1024
)

// ErrListing indicates that release metadata could not be fetched or parsed.
var ErrListing = errors.New("listing releases failed")

// Logger is the minimal logging interface this package needs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Config holds configuration for a Lister.
type Config struct {
	// APIBaseURL is the GitHub API base. Empty means api.github.com.
	APIBaseURL string
	// Token enables the authenticated, paginated listing path.
	Token string
	// HTTPClient overrides the HTTP client (tests). Nil means a default.
	HTTPClient *http.Client
	// Logger receives diagnostics. Nil means no logging.
	Logger Logger
}

// Lister fetches release tag names for the upstream project.
type Lister struct {
	apiBase    string
	token      string
	httpClient *http.Client
	logger     Logger
}

// NewLister creates a release lister.
func NewLister(config Config) *Lister {
	l := &Lister{
		apiBase:    strings.TrimSuffix(config.APIBaseURL, "/"),
		token:      config.Token,
		httpClient: config.HTTPClient,
		logger:     config.Logger,
	}
	if l.apiBase == "" {
		l.apiBase = defaultAPIBaseURL
	}
	if l.httpClient == nil {
		l.httpClient = http.DefaultClient
	}
	if l.logger == nil {
		l.logger = noopLogger{}
	}
	return l
}

// List returns the published release tag names in server-provided order.
func (l *Lister) List(ctx context.Context) ([]string, error) {
	if l.token != "" {
		l.logger.Debug("listing releases", "path", "authenticated", "repo", ProjectOwner+"/"+ProjectRepo)
		return l.listAuthenticated(ctx)
	}
	l.logger.Debug("listing releases", "path", "unauthenticated", "repo", ProjectOwner+"/"+ProjectRepo)
	return l.listUnauthenticated(ctx)
}

// listAuthenticated pages through every release with the API client.
func (l *Lister) listAuthenticated(ctx context.Context) ([]string, error) {
	client := github.NewClient(l.httpClient).WithAuthToken(l.token)
	if l.apiBase != defaultAPIBaseURL {
		base, err := url.Parse(l.apiBase + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: invalid API base %q: %v", ErrListing, l.apiBase, err)
		}
		client.BaseURL = base
	}

	var tags []string
	opts := &github.ListOptions{PerPage: perPage}
	for {
		releases, resp, err := client.Repositories.ListReleases(ctx, ProjectOwner, ProjectRepo, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrListing, err)
		}
		for _, release := range releases {
			tags = append(tags, release.GetTagName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	l.logger.Info("release listing complete", "count", len(tags))
	return tags, nil
}

// releaseRecord is the slice of the REST payload the unauthenticated path
// cares about.
type releaseRecord struct {
	TagName string `json:"tag_name"`
}

// listUnauthenticated performs a single anonymous fetch of the releases
// resource. One page is all the anonymous path gets; no pagination.
func (l *Lister) listUnauthenticated(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d", l.apiBase, ProjectOwner, ProjectRepo, perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrListing, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListing, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrListing, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d (likely the GitHub API rate limit; supply a token)", ErrListing, resp.StatusCode)
	}

	var records []releaseRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: unparseable response (likely the GitHub API rate limit; supply a token): %v", ErrListing, err)
	}

	tags := make([]string, 0, len(records))
	for _, record := range records {
		tags = append(tags, record.TagName)
	}

	l.logger.Info("release listing complete", "count", len(tags))
	return tags, nil
}
