package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/kv"
	"github.com/MrSnakeDoc/navstash/internal/utils"
)

// MinTTL is the shortest expiration hosted KV APIs accept.
const MinTTL = 60 * time.Second

// maxValueBytes caps how much of a value is read back from the API.
const maxValueBytes = 25 << 20

// Options configures the hosted KV client.
type Options struct {
	BaseURL       string // ex: https://kv.example.com/v1/namespaces/nav
	Token         string // bearer token, optional
	SigningSecret string // enables X-KV-Signature when set
	HTTPClient    *http.Client
}

// Client talks to a hosted key-value HTTP API:
//
//	GET    {base}/values/{key}
//	PUT    {base}/values/{key}?expiration_ttl=N
//	DELETE {base}/values/{key}
//	GET    {base}/health
type Client struct {
	base   string
	token  string
	signer *Signer
	http   *http.Client
}

var _ kv.Store = (*Client)(nil)

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("remote kv base url is empty")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid remote kv base url: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		base:   base,
		token:  opts.Token,
		signer: NewSigner(opts.SigningSecret),
		http:   httpClient,
	}, nil
}

func (c *Client) valueURL(key string) string {
	return c.base + "/values/" + url.PathEscape(key)
}

func (c *Client) do(ctx context.Context, method, rawURL, key string, body []byte) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build kv request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.signer != nil {
		c.signer.Apply(req, key, body)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kv %s %s: %w", method, key, err)
	}
	return resp, nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.valueURL(key), key, nil)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, kv.ErrNotFound
	}
	if err := checkStatus(resp, "get", key); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxValueBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read kv value %s: %w", key, err)
	}
	return data, nil
}

func (c *Client) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	target := c.valueURL(key)
	if ttl > 0 {
		if ttl < MinTTL {
			ttl = MinTTL
		}
		target += "?expiration_ttl=" + strconv.FormatInt(int64(ttl/time.Second), 10)
	}
	if value == nil {
		value = []byte{}
	}

	resp, err := c.do(ctx, http.MethodPut, target, key, value)
	if err != nil {
		return err
	}
	defer utils.Close(resp.Body)

	return checkStatus(resp, "put", key)
}

func (c *Client) Delete(ctx context.Context, key string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.valueURL(key), key, nil)
	if err != nil {
		return err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return checkStatus(resp, "delete", key)
}

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.base+"/health", "", nil)
	if err != nil {
		return err
	}
	defer utils.Close(resp.Body)

	return checkStatus(resp, "ping", "")
}

func checkStatus(resp *http.Response, op, key string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("kv %s %q failed: status %d: %s", op, key, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
