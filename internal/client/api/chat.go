package api

import (
	"context"
	"net/http"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
)

type Chat struct {
	d Doer
}

func (c Chat) History(ctx context.Context, caseID string) ([]models.ChatMessage, error) {
	if err := requireID("case id", caseID); err != nil {
		return nil, err
	}
	var out []models.ChatMessage
	if err := call(ctx, c.d, http.MethodGet, route("/api/chat", caseID, "messages"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c Chat) Send(ctx context.Context, caseID, text string) (*models.ChatMessage, error) {
	if err := requireID("case id", caseID); err != nil {
		return nil, err
	}
	if err := requireID("message text", text); err != nil {
		return nil, err
	}
	var out models.ChatMessage
	body := httpclient.JSON{Value: map[string]string{"text": text}}
	if err := call(ctx, c.d, http.MethodPost, route("/api/chat", caseID, "messages"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
