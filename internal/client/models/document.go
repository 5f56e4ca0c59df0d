package models

import "time"

// Document categories accepted by the upload route.
const (
	CategoryEvidence  = "EVIDENCE"
	CategoryPetition  = "PETITION"
	CategoryAffidavit = "AFFIDAVIT"
	CategoryOrder     = "ORDER"
	CategoryOther     = "OTHER"
)

type Document struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"caseId,omitempty"`
	FileName    string    `json:"fileName"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size,omitempty"`
	URL         string    `json:"url,omitempty"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Evidence is a document the backend fingerprints and anchors; the client
// only reads the outcome.
type Evidence struct {
	Document
	Hash     string `json:"hash,omitempty"`
	Verified bool   `json:"verified"`
}

type EvidenceVerification struct {
	EvidenceID   string    `json:"evidenceId"`
	Verified     bool      `json:"verified"`
	Hash         string    `json:"hash,omitempty"`
	BlockchainTx string    `json:"blockchainTx,omitempty"`
	CheckedAt    time.Time `json:"checkedAt"`
}
