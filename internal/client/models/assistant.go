package models

// AnalysisStatus is the state of a server-side document analysis job.
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "PENDING"
	AnalysisProcessing AnalysisStatus = "PROCESSING"
	AnalysisCompleted  AnalysisStatus = "COMPLETED"
	AnalysisFailed     AnalysisStatus = "FAILED"
)

// Terminal reports whether the job will not change state again.
func (s AnalysisStatus) Terminal() bool {
	return s == AnalysisCompleted || s == AnalysisFailed
}

type AnalysisJob struct {
	JobID      string         `json:"jobId"`
	DocumentID string         `json:"documentId,omitempty"`
	Status     AnalysisStatus `json:"status"`
	Summary    string         `json:"summary,omitempty"`
	KeyPoints  []string       `json:"keyPoints,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type AssistantReply struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}
