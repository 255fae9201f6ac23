// Package api talks to the IssueBell subscriptions backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/back1ash/IssueBell/internal/cache"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 15 * time.Second
	cacheBucket    = "subscriptions"
)

// SessionCookie is the cookie name the server reads the signed-in user from.
const SessionCookie = "session"

// Options defines configuration for the backend client.
type Options struct {
	BaseURL string
	Token   string
	// Session is the server's signed session cookie value, sent as
	// SessionCookie on every request.
	Session     string
	Timeout     time.Duration
	CacheTTL    time.Duration
	EnableCache bool
	CacheDir    string
	// Transport overrides the HTTP transport; nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is a thin REST client for /subscriptions/.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
}

// NewClient constructs a Client. A configured token is sent as a bearer
// token and a configured session as the session cookie; both may be set.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend URL is required")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("backend URL must start with http:// or https://: %s", base)
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	httpClient := &http.Client{Transport: transport}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	}
	if opts.Session != "" {
		jar, err := sessionJar(base, opts.Session)
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}
	httpClient.Timeout = opts.Timeout
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	var store *cache.Cache
	if opts.EnableCache && opts.CacheTTL > 0 {
		dir := opts.CacheDir
		if dir == "" {
			var err error
			dir, err = defaultCacheDir()
			if err != nil {
				return nil, err
			}
		}
		var err error
		store, err = cache.New(dir, opts.CacheTTL)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		cache:   store,
	}, nil
}

// ListSubscriptions returns the caller's subscriptions, newest first.
func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	url := c.collectionURL()
	if c.cache != nil {
		if data, ok, err := c.cache.Get(cacheBucket, url); err == nil && ok {
			var subs []Subscription
			if err := json.Unmarshal(data, &subs); err == nil {
				slog.Debug("serving subscriptions from cache", slog.Int("count", len(subs)))
				return subs, nil
			}
		}
	}

	var subs []Subscription
	if err := c.do(ctx, http.MethodGet, url, nil, &subs); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(subs); err == nil {
			_ = c.cache.Set(cacheBucket, url, data)
		}
	}
	return subs, nil
}

// CreateSubscription creates a single repo + label subscription.
func (c *Client) CreateSubscription(ctx context.Context, repoFullName, label string) (Subscription, error) {
	body, err := json.Marshal(createRequest{RepoFullName: repoFullName, Label: label})
	if err != nil {
		return Subscription{}, err
	}

	var sub Subscription
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), body, &sub); err != nil {
		return Subscription{}, err
	}
	c.invalidate()
	return sub, nil
}

// DeleteSubscription removes the subscription with the given id.
func (c *Client) DeleteSubscription(ctx context.Context, id int64) error {
	url := c.collectionURL() + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	slog.Debug("backend request", slog.String("method", method), slog.String("url", url), slog.Int("status", resp.StatusCode), slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Method: method, URL: url, StatusCode: resp.StatusCode}
		var parsed errorBody
		if data, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(data, &parsed) == nil {
			apiErr.Detail = parsed.message()
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, url, err)
	}
	return nil
}

func (c *Client) collectionURL() string {
	return c.baseURL + "/subscriptions/"
}

func (c *Client) invalidate() {
	if c.cache == nil {
		return
	}
	if err := c.cache.Purge(cacheBucket); err != nil {
		slog.Warn("failed to invalidate subscription cache", slog.String("error", err.Error()))
	}
}

func sessionJar(base, session string) (http.CookieJar, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %s: %w", base, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	jar.SetCookies(u, []*http.Cookie{{Name: SessionCookie, Value: session, Path: "/"}})
	return jar, nil
}

func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "issuebell"), nil
}
