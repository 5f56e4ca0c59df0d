package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
)

const DefaultJitsiBase = "https://meet.jit.si"

// newRoomName is swapped in tests.
var newRoomName = func() string { return "nyaysetu-" + uuid.NewString() }

type Meetings struct {
	d Doer
	// JitsiBase is the conferencing host JoinURL points at.
	JitsiBase string
}

// Schedule books a hearing. A room name is generated when none is given.
func (m Meetings) Schedule(ctx context.Context, in models.NewMeeting) (*models.Meeting, error) {
	if err := requireID("case id", in.CaseID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.RoomName) == "" {
		in.RoomName = newRoomName()
	}
	var out models.Meeting
	if err := call(ctx, m.d, http.MethodPost, "/api/meetings", httpclient.JSON{Value: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m Meetings) ListByCase(ctx context.Context, caseID string) ([]models.Meeting, error) {
	if err := requireID("case id", caseID); err != nil {
		return nil, err
	}
	var out []models.Meeting
	if err := call(ctx, m.d, http.MethodGet, route("/api/meetings/case", caseID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JoinURL is the browser link for the meeting's conference room.
func (m Meetings) JoinURL(meeting models.Meeting) string {
	base := strings.TrimRight(m.JitsiBase, "/")
	if base == "" {
		base = DefaultJitsiBase
	}
	return base + "/" + url.PathEscape(meeting.RoomName)
}
