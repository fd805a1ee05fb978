package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Fetcher defines the read operations the explorer needs from the catalog
// service. It is implemented by *Client and can be substituted in tests.
type Fetcher interface {
	FetchList(ctx context.Context, offset, limit int) (*ListPage, error)
	FetchByID(ctx context.Context, id int) (*Item, error)
	FetchByName(ctx context.Context, name string) (*Item, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// StatusError reports a non-2xx response from the catalog API.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// IsNotFound reports whether err is an HTTP 404 from the catalog API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// IsCanceled reports whether err stems from context cancellation rather than
// a genuine failure. Callers suppress these silently.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Client talks to the remote catalog API. Responses are cached by exact
// request URL for the lifetime of the client; entries never expire. One
// client instance is shared per process so all callers see the same cache.
type Client struct {
	baseURL    *url.URL
	collection string
	http       *http.Client
	userAgent  string

	mu    sync.Mutex
	cache map[string][]byte
}

const (
	defaultCollection = "items"
	defaultUserAgent  = "trove/0.1"
)

// NewClient builds a Client for the given API base URL. The collection is
// the resource path segment under the base; empty uses "items".
func NewClient(baseURL, collection string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultCollection
	}
	return &Client{
		baseURL:    base,
		collection: collection,
		http:       &http.Client{},
		userAgent:  defaultUserAgent,
		cache:      make(map[string][]byte),
	}, nil
}

// FetchList retrieves one page of item references.
func (c *Client) FetchList(ctx context.Context, offset, limit int) (*ListPage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("offset", strconv.Itoa(offset))
	values.Set("limit", strconv.Itoa(limit))
	rel := &url.URL{Path: c.collectionPath(), RawQuery: values.Encode()}
	var payload ListPage
	if err := c.get(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchByID retrieves the full record for a numeric identifier.
func (c *Client) FetchByID(ctx context.Context, id int) (*Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: c.collectionPath() + "/" + strconv.Itoa(id)}
	var payload Item
	if err := c.get(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchByName retrieves the full record for a name. Lookup is
// case-insensitive; the name is lowercased before the request.
func (c *Client) FetchByName(ctx context.Context, name string) (*Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return nil, fmt.Errorf("item name required")
	}
	rel := &url.URL{Path: c.collectionPath() + "/" + trimmed}
	var payload Item
	if err := c.get(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CacheLen returns the number of cached responses.
func (c *Client) CacheLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

var idPattern = regexp.MustCompile(`/(\d+)/$`)

// ExtractID parses the trailing digit run from a resource URL ending in
// "/<digits>/". A URL with no such suffix yields 0, a caller-visible
// sentinel rather than an error.
func ExtractID(resource string) int {
	matches := idPattern.FindStringSubmatch(resource)
	if matches == nil {
		return 0
	}
	id, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return id
}

func (c *Client) collectionPath() string {
	return "/" + strings.Trim(c.collection, "/")
}

// get resolves rel against the base URL and decodes the response into dest,
// serving from the cache when the exact URL has been seen before.
func (c *Client) get(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery
	key := reqURL.String()

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		if err := json.Unmarshal(cached, dest); err != nil {
			return fmt.Errorf("decode cached response: %w", err)
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Path: rel.Path}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.mu.Lock()
	c.cache[key] = body
	c.mu.Unlock()
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base URL required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
