package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginTransport_RoutesBarePaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	tr, err := NewOriginTransport(srv.URL+"/ignored/path", nil)
	require.NoError(t, err)
	c := New("", nil, WithHTTPClient(&http.Client{Transport: tr}))

	var out struct{ OK bool }
	require.NoError(t, Call(context.Background(), c, Request{Path: "/api/health"}, &out))
	assert.True(t, out.OK)
	assert.Equal(t, "/api/health", gotPath)
}

func TestOriginTransport_LeavesAbsoluteURLs(t *testing.T) {
	rec := &recorder{}
	tr, err := NewOriginTransport("http://proxy.local:8081", rec)
	require.NoError(t, err)

	c := New("https://api.example", nil, WithHTTPClient(&http.Client{Transport: tr}))
	_, err = c.Do(context.Background(), Request{Path: "/api/cases"})
	require.NoError(t, err)
	req, _ := rec.last(t)
	assert.Equal(t, "https://api.example/api/cases", req.URL.String())

	c = New("", nil, WithHTTPClient(&http.Client{Transport: tr}))
	_, err = c.Do(context.Background(), Request{Path: "/api/cases"})
	require.NoError(t, err)
	req, _ = rec.last(t)
	assert.Equal(t, "http://proxy.local:8081/api/cases", req.URL.String())
}

func TestNewOriginTransport_RejectsBareHost(t *testing.T) {
	_, err := NewOriginTransport("proxy.local:8081", nil)
	assert.Error(t, err)
	_, err = NewOriginTransport("", nil)
	assert.Error(t, err)
}
