package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
	"github.com/nyaysetu/nyaysetu-client/internal/client/services"
)

func (a *App) cache() responseCache {
	return responseCache{root: a.caches.Root}
}

// Cases lists the user's cases. While the backend is unreachable the last
// fetched list is shown instead.
func (a *App) Cases(ctx context.Context) error {
	list, err := a.api.Cases.List(ctx)
	if err != nil {
		var cached []models.Case
		if httpclient.IsTransport(err) && a.cache().load(bucketAPI, "cases", &cached) {
			a.println("(offline: showing cached list)")
			a.printCases(cached)
			return nil
		}
		return a.report("Listing cases", err)
	}
	if err := a.cache().save(bucketAPI, "cases", list); err != nil {
		a.log.Warn(ctx, "cache cases", "error", err)
	}
	a.printCases(list)
	return nil
}

func (a *App) printCases(list []models.Case) {
	if len(list) == 0 {
		a.println("No cases")
		return
	}
	for _, c := range list {
		a.printf("%-12s %-20s %s\n", c.ID, c.Status, c.Title)
	}
}

func (a *App) Case(ctx context.Context, id string) error {
	c, err := a.api.Cases.Get(ctx, id)
	if err != nil {
		return a.report("Fetching case", err)
	}
	a.printf("%s  %s\n", c.CaseNumber, c.Title)
	a.printf("Status:      %s\n", c.Status)
	if c.Court != "" {
		a.printf("Court:       %s\n", c.Court)
	}
	if c.Petitioner != "" || c.Respondent != "" {
		a.printf("Parties:     %s v. %s\n", c.Petitioner, c.Respondent)
	}
	if c.NextHearing != nil {
		a.printf("Next hearing: %s\n", c.NextHearing.Local().Format(time.DateTime))
	}
	if c.Description != "" {
		a.println(c.Description)
	}
	return nil
}

func (a *App) NewCase(ctx context.Context) error {
	var in models.NewCase
	var err error
	if in.Title, err = getSimpleText(a.reader, "Case title", a.out); err != nil {
		return err
	}
	if in.CaseType, err = getSimpleText(a.reader, "Case type (CIVIL, CRIMINAL, FAMILY, ...)", a.out); err != nil {
		return err
	}
	if in.Court, err = getSimpleText(a.reader, "Court", a.out); err != nil {
		return err
	}
	if in.Petitioner, err = getSimpleText(a.reader, "Petitioner", a.out); err != nil {
		return err
	}
	if in.Respondent, err = getSimpleText(a.reader, "Respondent", a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Describe the matter", a.out); err != nil {
		return err
	}
	in.CaseType = strings.ToUpper(in.CaseType)

	return a.submit(ctx, "Filing case", services.CreateCaseIntent(in), func(res any) {
		if c, ok := res.(*models.Case); ok {
			a.printf("Filed case %s (%s)\n", c.ID, c.Status)
		}
	})
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	st, ok := models.ParseCaseStatus(status)
	if !ok {
		a.printf("Unknown status %q\n", status)
		return fmt.Errorf("unknown status %q", status)
	}
	return a.submit(ctx, "Updating status", services.UpdateCaseStatusIntent(id, st), func(any) {
		a.printf("Case %s is now %s\n", id, st)
	})
}

// submit runs in through the action service. A queued intent is reported
// as success.
func (a *App) submit(ctx context.Context, what string, in services.Intent, done func(any)) error {
	res, err := a.actions.Submit(ctx, in)
	switch {
	case errors.Is(err, services.ErrQueued):
		a.printf("%s: offline, queued for when the connection returns\n", what)
		return nil
	case err != nil:
		return a.report(what, err)
	}
	done(res)
	return nil
}
