package models

import "time"

type Meeting struct {
	ID              string    `json:"id"`
	CaseID          string    `json:"caseId"`
	Title           string    `json:"title"`
	RoomName        string    `json:"roomName"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	Participants    []string  `json:"participants,omitempty"`
}

// EndsAt is ScheduledAt plus the duration (zero duration means open-ended).
func (m Meeting) EndsAt() time.Time {
	return m.ScheduledAt.Add(time.Duration(m.DurationMinutes) * time.Minute)
}

// NewMeeting is the payload for scheduling a hearing.
type NewMeeting struct {
	CaseID          string    `json:"caseId"`
	Title           string    `json:"title"`
	RoomName        string    `json:"roomName"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	Participants    []string  `json:"participants,omitempty"`
}

type ChatMessage struct {
	ID         string    `json:"id"`
	CaseID     string    `json:"caseId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sentAt"`
}
