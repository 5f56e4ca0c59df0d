package api

import (
	"context"
	"net/http"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
)

type Cases struct {
	d Doer
}

func (c Cases) List(ctx context.Context) ([]models.Case, error) {
	var out []models.Case
	if err := call(ctx, c.d, http.MethodGet, "/api/cases", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c Cases) Get(ctx context.Context, id string) (*models.Case, error) {
	if err := requireID("case id", id); err != nil {
		return nil, err
	}
	var out models.Case
	if err := call(ctx, c.d, http.MethodGet, route("/api/cases", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Cases) Create(ctx context.Context, in models.NewCase) (*models.Case, error) {
	if err := requireID("title", in.Title); err != nil {
		return nil, err
	}
	var out models.Case
	if err := call(ctx, c.d, http.MethodPost, "/api/cases", httpclient.JSON{Value: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Cases) UpdateStatus(ctx context.Context, id string, status models.CaseStatus) (*models.Case, error) {
	if err := requireID("case id", id); err != nil {
		return nil, err
	}
	var out models.Case
	body := httpclient.JSON{Value: map[string]models.CaseStatus{"status": status}}
	if err := call(ctx, c.d, http.MethodPatch, route("/api/cases", id, "status"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
