package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFeedBytes bounds the release metadata body. A legitimate latest-release
// response is a few KB; anything near this limit is garbage.
const maxFeedBytes = 1 << 20

// Resolver fetches latest-release metadata from a GitHub-style release feed.
type Resolver struct {
	owner     string
	repo      string
	token     string // optional, for rate limiting
	userAgent string
	client    *http.Client
	baseURL   string // overridable for testing
}

// NewResolver creates a Resolver for the given repository.
func NewResolver(owner, repo, currentVersion string) *Resolver {
	return &Resolver{
		owner:     owner,
		repo:      repo,
		userAgent: fmt.Sprintf("%s/%s", toolName, Normalize(currentVersion)),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// WithToken sets an optional bearer token for authenticated requests.
func (r *Resolver) WithToken(token string) *Resolver {
	r.token = token
	return r
}

// WithBaseURL overrides the feed base URL (used by tests and mirrors).
func (r *Resolver) WithBaseURL(base string) *Resolver {
	r.baseURL = base
	return r
}

// LatestRelease fetches metadata for the latest published release. A
// non-success status is returned as a *HTTPStatusError without parsing the
// body; a body that does not decode to release metadata wraps
// ErrMalformedResponse.
func (r *Resolver) LatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", r.baseURL, r.owner, r.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// GitHub rejects requests without an identifying User-Agent.
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	var release Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&release); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if release.TagName == "" {
		return nil, fmt.Errorf("%w: release has no tag name", ErrMalformedResponse)
	}

	return &release, nil
}

// FindAsset returns the asset with the given name, or ErrAssetNotFound if
// the release does not carry it.
func (rel *Release) FindAsset(name string) (*Asset, error) {
	for i := range rel.Assets {
		if rel.Assets[i].Name == name {
			return &rel.Assets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
}
