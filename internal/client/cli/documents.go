package cli

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyaysetu/nyaysetu-client/internal/client/api"
	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
)

// Upload sends a local file. Evidence goes to the evidence route; anything
// else is a plain case document. Uploads are never queued.
func (a *App) Upload(ctx context.Context, caseID, path, category, description string) error {
	f, err := os.Open(path)
	if err != nil {
		a.printf("Cannot open %s: %v\n", path, err)
		return err
	}
	defer f.Close()

	in := api.UploadInput{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Content:     f,
		CaseID:      caseID,
		Category:    strings.ToUpper(category),
		Description: description,
	}

	var doc *models.Document
	if in.Category == models.CategoryEvidence {
		ev, err := a.api.Evidence.Upload(ctx, in)
		if err != nil {
			return a.uploadFailed(err)
		}
		doc = &ev.Document
		if ev.Hash != "" {
			a.printf("Evidence fingerprint: %s\n", ev.Hash)
		}
	} else {
		doc, err = a.api.Documents.Upload(ctx, in)
		if err != nil {
			return a.uploadFailed(err)
		}
	}
	a.printf("Uploaded %s as document %s\n", doc.FileName, doc.ID)
	return nil
}

func (a *App) uploadFailed(err error) error {
	if httpclient.IsTransport(err) {
		a.println("Uploads need a connection; try again when back online")
		return err
	}
	return a.report("Upload", err)
}

func (a *App) Documents(ctx context.Context, caseID string) error {
	docs, err := a.api.Documents.ListByCase(ctx, caseID)
	if err != nil {
		return a.report("Listing documents", err)
	}
	if len(docs) == 0 {
		a.println("No documents")
		return nil
	}
	for _, d := range docs {
		a.printf("%-12s %-10s %s\n", d.ID, d.Category, d.FileName)
	}
	return nil
}

// Analyze starts an assistant analysis of a document and waits for it.
func (a *App) Analyze(ctx context.Context, documentID string) error {
	job, err := a.api.Assistant.StartAnalysis(ctx, documentID)
	if err != nil {
		return a.report("Starting analysis", err)
	}
	a.println("Analysing, please wait...")

	job, err = a.api.Assistant.WaitForAnalysis(ctx, job.JobID, a.config.PollInterval, a.config.PollMaxAttempts)
	if err != nil {
		return a.report("Analysis", err)
	}
	a.println(job.Summary)
	for _, p := range job.KeyPoints {
		a.printf("  - %s\n", p)
	}
	return nil
}
