package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
)

// UploadInput is a file plus optional metadata. Blank metadata fields are
// left out of the multipart payload entirely.
type UploadInput struct {
	Filename    string
	ContentType string
	Content     io.Reader
	CaseID      string
	Category    string
	Description string
}

// UploadBody builds the multipart payload for in.
func UploadBody(in UploadInput) (httpclient.Multipart, error) {
	if in.Content == nil || in.Filename == "" {
		return httpclient.Multipart{}, fmt.Errorf("%w: upload needs a file", common.ErrInvalidArgument)
	}
	return httpclient.NewMultipart().
		FileWithType("file", in.Filename, in.ContentType, in.Content).
		OptionalField("category", in.Category).
		OptionalField("description", in.Description).
		OptionalField("caseId", in.CaseID).
		Build(), nil
}

type Documents struct {
	d Doer
}

func (s Documents) Upload(ctx context.Context, in UploadInput) (*models.Document, error) {
	body, err := UploadBody(in)
	if err != nil {
		return nil, err
	}
	var out models.Document
	if err := call(ctx, s.d, http.MethodPost, "/api/documents/upload", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s Documents) ListByCase(ctx context.Context, caseID string) ([]models.Document, error) {
	if err := requireID("case id", caseID); err != nil {
		return nil, err
	}
	var out []models.Document
	if err := call(ctx, s.d, http.MethodGet, route("/api/documents/case", caseID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s Documents) Delete(ctx context.Context, id string) error {
	if err := requireID("document id", id); err != nil {
		return err
	}
	return call(ctx, s.d, http.MethodDelete, route("/api/documents", id), nil, nil)
}

// Evidence uploads go through the same multipart contract; fingerprinting
// and verification happen on the server.
type Evidence struct {
	d Doer
}

func (e Evidence) Upload(ctx context.Context, in UploadInput) (*models.Evidence, error) {
	if in.Category == "" {
		in.Category = models.CategoryEvidence
	}
	body, err := UploadBody(in)
	if err != nil {
		return nil, err
	}
	var out models.Evidence
	if err := call(ctx, e.d, http.MethodPost, "/api/evidence/upload", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e Evidence) Verify(ctx context.Context, id string) (*models.EvidenceVerification, error) {
	if err := requireID("evidence id", id); err != nil {
		return nil, err
	}
	var out models.EvidenceVerification
	if err := call(ctx, e.d, http.MethodGet, route("/api/evidence", id, "verify"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
