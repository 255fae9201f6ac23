package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/back1ash/IssueBell/internal/cache"
	"github.com/cli/go-gh/v2/pkg/api"
)

const (
	labelsPerPage = 100
	cacheBucket   = "github"
)

// Options defines configuration for the GitHub API client.
type Options struct {
	CacheTTL    time.Duration
	EnableCache bool
	CacheDir    string
}

type restClient interface {
	DoWithContext(ctx context.Context, method string, path string, body io.Reader, response interface{}) error
}

// Client wraps github.com/cli/go-gh REST client for repository lookups.
type Client struct {
	rest  restClient
	cache *cache.Cache
}

// NewClient constructs a Client respecting gh configuration.
func NewClient(opts Options) (*Client, error) {
	clientOpts := api.ClientOptions{}
	if opts.CacheTTL > 0 && opts.EnableCache {
		clientOpts.CacheTTL = opts.CacheTTL
		clientOpts.EnableCache = true
	}

	rest, err := api.NewRESTClient(clientOpts)
	if err != nil {
		return nil, err
	}

	var cacheStore *cache.Cache
	if opts.EnableCache && opts.CacheTTL > 0 {
		cacheDir := opts.CacheDir
		if cacheDir == "" {
			cacheDir, err = defaultCacheDir()
			if err != nil {
				return nil, err
			}
		}
		cacheStore, err = cache.New(cacheDir, opts.CacheTTL)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		rest:  rest,
		cache: cacheStore,
	}, nil
}

// GetRepository looks up a repository, returning its canonical name.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (Repository, error) {
	var response repositoryJSON
	if err := c.cachedGet(ctx, fmt.Sprintf("repos/%s/%s", owner, repo), &response); err != nil {
		return Repository{}, err
	}
	return mapRepository(response), nil
}

// ListLabels returns every issue label defined on the repository.
func (c *Client) ListLabels(ctx context.Context, owner, repo string) ([]Label, error) {
	page := 1
	var labels []Label

	for {
		path := fmt.Sprintf("repos/%s/%s/labels?per_page=%d&page=%d", owner, repo, labelsPerPage, page)
		var response []labelJSON
		if err := c.cachedGet(ctx, path, &response); err != nil {
			return nil, err
		}
		for _, l := range response {
			labels = append(labels, mapLabel(l))
		}
		if len(response) < labelsPerPage {
			break
		}
		page++
	}

	return labels, nil
}

func (c *Client) cachedGet(ctx context.Context, path string, out interface{}) error {
	if c.cache != nil {
		if data, ok, err := c.cache.Get(cacheBucket, path); err == nil && ok {
			if err := json.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if err := c.rest.DoWithContext(ctx, http.MethodGet, path, nil, out); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if c.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			_ = c.cache.Set(cacheBucket, path, data)
		}
	}
	return nil
}

func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "issuebell"), nil
}
