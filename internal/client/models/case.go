// Package models defines the data exchanged with the NyaySetu backend.
package models

import (
	"strings"
	"time"
)

// CaseStatus is the lifecycle state of a court case.
type CaseStatus string

const (
	CaseStatusFiled       CaseStatus = "FILED"
	CaseStatusUnderReview CaseStatus = "UNDER_REVIEW"
	CaseStatusHearing     CaseStatus = "HEARING_SCHEDULED"
	CaseStatusJudgment    CaseStatus = "JUDGMENT_RESERVED"
	CaseStatusClosed      CaseStatus = "CLOSED"
)

var caseStatuses = []CaseStatus{
	CaseStatusFiled, CaseStatusUnderReview, CaseStatusHearing, CaseStatusJudgment, CaseStatusClosed,
}

// ParseCaseStatus accepts any case and surrounding whitespace.
func ParseCaseStatus(s string) (CaseStatus, bool) {
	want := CaseStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range caseStatuses {
		if st == want {
			return st, true
		}
	}
	return "", false
}

// Case is a filed matter as the backend returns it.
type Case struct {
	ID          string     `json:"id"`
	CaseNumber  string     `json:"caseNumber,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CaseType    string     `json:"caseType,omitempty"`
	Status      CaseStatus `json:"status"`
	Court       string     `json:"court,omitempty"`
	Petitioner  string     `json:"petitioner,omitempty"`
	Respondent  string     `json:"respondent,omitempty"`
	LawyerID    string     `json:"lawyerId,omitempty"`
	JudgeID     string     `json:"judgeId,omitempty"`
	NextHearing *time.Time `json:"nextHearing,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewCase is the payload for filing a case.
type NewCase struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CaseType    string `json:"caseType,omitempty"`
	Court       string `json:"court,omitempty"`
	Petitioner  string `json:"petitioner,omitempty"`
	Respondent  string `json:"respondent,omitempty"`
}
