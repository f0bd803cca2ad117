package webdav

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/navstash/internal/utils"
)

// BackupFileName is the file written into the WebDAV collection.
const BackupFileName = "cloudnav_backup.json"

const maxDownloadBytes = 50 << 20

var (
	ErrNotFound = errors.New("webdav: file not found")
	ErrNoURL    = errors.New("webdav: url is required")
)

// Config is what the client sends with each WebDAV request.
type Config struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// StatusError reports a non-success answer from the WebDAV server.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webdav %s failed: status %d", e.Op, e.Status)
}

// Client is a minimal WebDAV client: collection check, file PUT and GET.
type Client struct {
	base     string
	username string
	password string
	http     *http.Client
}

func New(cfg Config, httpClient *http.Client) (*Client, error) {
	base := strings.TrimSpace(cfg.URL)
	if base == "" {
		return nil, ErrNoURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("webdav: invalid url %q", cfg.URL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		base:     strings.TrimRight(base, "/"),
		username: cfg.Username,
		password: cfg.Password,
		http:     httpClient,
	}, nil
}

// FileURL returns the full URL of a file inside the collection.
func (c *Client) FileURL(name string) string {
	return c.base + "/" + url.PathEscape(name)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, header http.Header) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("webdav: failed to build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webdav %s: %w", strings.ToLower(method), err)
	}
	return resp, nil
}

// Check issues a depth-0 PROPFIND on the collection and reports whether the
// server accepted the credentials.
func (c *Client) Check(ctx context.Context) error {
	header := http.Header{}
	header.Set("Depth", "0")
	resp, err := c.do(ctx, "PROPFIND", c.base+"/", nil, header)
	if err != nil {
		return err
	}
	defer utils.Close(resp.Body)
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{Op: "check", Status: resp.StatusCode}
}

// Upload writes body as name inside the collection.
func (c *Client) Upload(ctx context.Context, name string, body []byte) error {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	resp, err := c.do(ctx, http.MethodPut, c.FileURL(name), body, header)
	if err != nil {
		return err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{Op: "upload", Status: resp.StatusCode}
}

// Download reads name from the collection.
func (c *Client) Download(ctx context.Context, name string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.FileURL(name), nil, nil)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &StatusError{Op: "download", Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("webdav: failed to read %s: %w", name, err)
	}
	return data, nil
}
