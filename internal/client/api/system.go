package api

import (
	"context"
	"net/http"
)

type System struct {
	d Doer
}

// Health probes the backend liveness route.
func (s System) Health(ctx context.Context) error {
	return call(ctx, s.d, http.MethodGet, "/api/health", nil, nil)
}
