package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
)

// OriginTransport routes bare-path requests, as produced by a Client with
// an empty base URL, to a fixed origin such as a local reverse proxy.
// Requests that already carry a host pass through unchanged.
type OriginTransport struct {
	origin *url.URL
	next   http.RoundTripper
}

// NewOriginTransport parses origin ("scheme://host[:port]"). A nil next
// uses http.DefaultTransport.
func NewOriginTransport(origin string, next http.RoundTripper) (*OriginTransport, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must be scheme://host", origin)
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return &OriginTransport{origin: &url.URL{Scheme: u.Scheme, Host: u.Host}, next: next}, nil
}

func (t *OriginTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.URL.Host != "" {
		return t.next.RoundTrip(r)
	}
	out := r.Clone(r.Context())
	out.URL.Scheme = t.origin.Scheme
	out.URL.Host = t.origin.Host
	return t.next.RoundTrip(out)
}
