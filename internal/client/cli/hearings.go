package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
	"github.com/nyaysetu/nyaysetu-client/internal/client/services"
)

const scheduleLayout = "2006-01-02T15:04"

func (a *App) Meetings(ctx context.Context, caseID string) error {
	list, err := a.api.Meetings.ListByCase(ctx, caseID)
	if err != nil {
		return a.report("Listing hearings", err)
	}
	if len(list) == 0 {
		a.println("No hearings scheduled")
		return nil
	}
	for _, m := range list {
		a.printf("%s  %s\n  join: %s\n", m.ScheduledAt.Local().Format(time.DateTime), m.Title, a.api.Meetings.JoinURL(m))
	}
	return nil
}

func (a *App) Schedule(ctx context.Context, caseID, when, title string) error {
	at, err := time.ParseInLocation(scheduleLayout, when, time.Local)
	if err != nil {
		a.printf("Bad time %q, expected %s\n", when, scheduleLayout)
		return fmt.Errorf("parse hearing time: %w", err)
	}
	if title == "" {
		title = "Hearing"
	}
	m, err := a.api.Meetings.Schedule(ctx, models.NewMeeting{CaseID: caseID, Title: title, ScheduledAt: at})
	if err != nil {
		return a.report("Scheduling hearing", err)
	}
	a.printf("Hearing %s scheduled for %s\n  join: %s\n", m.ID, m.ScheduledAt.Local().Format(time.DateTime), a.api.Meetings.JoinURL(*m))
	return nil
}

// Chat prints the case conversation when text is empty and sends text
// otherwise. Sends are queued while offline.
func (a *App) Chat(ctx context.Context, caseID, text string) error {
	if text == "" {
		msgs, err := a.api.Chat.History(ctx, caseID)
		if err != nil {
			return a.report("Loading chat", err)
		}
		for _, m := range msgs {
			a.printf("[%s] %s: %s\n", m.SentAt.Local().Format(time.TimeOnly), m.SenderName, m.Text)
		}
		return nil
	}
	return a.submit(ctx, "Sending message", services.SendChatIntent(caseID, text), func(any) {
		a.println("Sent")
	})
}

func (a *App) Ask(ctx context.Context, question string) error {
	rep, err := a.api.Assistant.Ask(ctx, question, "")
	if err != nil {
		return a.report("Asking assistant", err)
	}
	a.println(rep.Answer)
	for _, s := range rep.Sources {
		a.printf("  source: %s\n", s)
	}
	return nil
}
