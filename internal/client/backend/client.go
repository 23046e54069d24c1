// Package backend talks to the BIJLI.GRID backend: the HTTP JSON API for
// profiles, assets and stats, and the gRPC health service that drives the
// client's online indicator.
//
// Every HTTP failure is reported as common.ErrSyncFailed wrapping the
// cause. Nothing is retried.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/netx"
)

const defaultTimeout = 10 * time.Second

// Client is the subset of the backend API the CLI uses.
type Client interface {
	Health(ctx context.Context) (Health, error)
	SyncProfile(ctx context.Context, walletAddress, name string) (Profile, error)
	Assets(ctx context.Context, profileID string) ([]Asset, error)
	Stats(ctx context.Context, profileID string) (Stats, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *HTTPClient) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return c.baseURL + "/api/" + strings.Join(escaped, "/")
}

func (c *HTTPClient) do(ctx context.Context, op, method, url string, in, out any) error {
	if err := netx.DoJSON(ctx, c.http, method, url, in, out); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrSyncFailed, op, err)
	}
	return nil
}

func (c *HTTPClient) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, "health", http.MethodGet, c.endpoint("health"), nil, &h)
	return h, err
}

// SyncProfile finds or creates the profile linked to walletAddress. An
// empty name lets the backend pick a default.
func (c *HTTPClient) SyncProfile(ctx context.Context, walletAddress, name string) (Profile, error) {
	var p Profile
	req := profileRequest{WalletAddress: walletAddress, Name: name}
	err := c.do(ctx, "sync profile", http.MethodPost, c.endpoint("profile"), req, &p)
	return p, err
}

func (c *HTTPClient) Assets(ctx context.Context, profileID string) ([]Asset, error) {
	var assets []Asset
	err := c.do(ctx, "fetch assets", http.MethodGet, c.endpoint("assets", profileID), nil, &assets)
	return assets, err
}

// Stats returns grid-wide stats when profileID is empty.
func (c *HTTPClient) Stats(ctx context.Context, profileID string) (Stats, error) {
	u := c.endpoint("stats")
	if profileID != "" {
		u = c.endpoint("stats", profileID)
	}
	var s Stats
	err := c.do(ctx, "fetch stats", http.MethodGet, u, nil, &s)
	return s, err
}
