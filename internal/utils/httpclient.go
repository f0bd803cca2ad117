package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// NewHTTPClient builds the client used for every outbound call (WebDAV,
// remote KV). proxyURL may be empty for direct connections, or a
// socks5:// / socks5h:// URL with optional user:password.
func NewHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	base := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 nil,
		DialContext:           base.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
	}

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid outbound proxy url: %w", err)
		}
		dialer, err := proxy.FromURL(u, base)
		if err != nil {
			return nil, fmt.Errorf("unsupported outbound proxy %q: %w", u.Scheme, err)
		}
		transport.DialContext = contextDialer(dialer)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

func contextDialer(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}
