package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
	"github.com/nyaysetu/nyaysetu-client/internal/client/poll"
)

type Assistant struct {
	d Doer
}

// Ask sends a free-form question, optionally scoped to a case.
func (a Assistant) Ask(ctx context.Context, question, caseID string) (*models.AssistantReply, error) {
	if err := requireID("question", question); err != nil {
		return nil, err
	}
	payload := map[string]string{"message": question}
	if caseID != "" {
		payload["caseId"] = caseID
	}
	var out models.AssistantReply
	if err := call(ctx, a.d, http.MethodPost, "/api/ai/chat", httpclient.JSON{Value: payload}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a Assistant) StartAnalysis(ctx context.Context, documentID string) (*models.AnalysisJob, error) {
	if err := requireID("document id", documentID); err != nil {
		return nil, err
	}
	var out models.AnalysisJob
	if err := call(ctx, a.d, http.MethodPost, route("/api/ai/analyze", documentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a Assistant) AnalysisStatus(ctx context.Context, jobID string) (*models.AnalysisJob, error) {
	if err := requireID("job id", jobID); err != nil {
		return nil, err
	}
	var out models.AnalysisJob
	if err := call(ctx, a.d, http.MethodGet, route("/api/ai/analysis", jobID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForAnalysis polls AnalysisStatus until the job is terminal. A FAILED
// job is returned together with ErrAnalysisFailed. Cancel ctx to abandon.
func (a Assistant) WaitForAnalysis(ctx context.Context, jobID string, interval time.Duration, maxAttempts int) (*models.AnalysisJob, error) {
	job, err := poll.Until(ctx, interval, maxAttempts, func(ctx context.Context) (*models.AnalysisJob, bool, error) {
		j, err := a.AnalysisStatus(ctx, jobID)
		if err != nil {
			return nil, false, err
		}
		return j, j.Status.Terminal(), nil
	})
	if err != nil {
		return nil, err
	}
	if job.Status == models.AnalysisFailed {
		return job, fmt.Errorf("%w: %s", ErrAnalysisFailed, job.Error)
	}
	return job, nil
}
