package dto

import "time"

// CreateInterviewPayload is what gets sent to the CMS create operation.
type CreateInterviewPayload struct {
	Resume            *string `json:"resume"`
	Mode              string  `json:"mode"`
	Difficulty        string  `json:"difficulty"`
	Skills            string  `json:"skills"`
	Details           string  `json:"details"`
	NumberOfQuestions int     `json:"numberOfQuestions"`
	User              string  `json:"user"`
	CandidateName     string  `json:"candidateName"`
}

// CreateInterviewRequest is the body of POST /api/interviews for clients that
// keep their own draft.
type CreateInterviewRequest struct {
	CandidateName string  `json:"candidateName"`
	Resume        *string `json:"resume"`
	Mode          string  `json:"mode" validate:"omitempty,oneof=Technical HR"`
	Difficulty    string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Skills        string  `json:"skills"`
	Topic         string  `json:"topic"`
	QuestionCount int     `json:"questionCount" validate:"omitempty,question_count"`
}

type CreateInterviewResponse struct {
	DocumentID string `json:"documentId"`
	Redirect   string `json:"redirect"`
}

type ReportCardDTO struct {
	ID                string    `json:"id"`
	DocumentID        string    `json:"documentId"`
	Title             string    `json:"title"`
	CandidateName     string    `json:"candidateName"`
	Mode              string    `json:"mode"`
	Difficulty        string    `json:"difficulty"`
	Skills            string    `json:"skills"`
	NumberOfQuestions int       `json:"numberOfQuestions"`
	HasResume         bool      `json:"hasResume"`
	HasReport         bool      `json:"hasReport"`
	Retake            string    `json:"retake"`
	CreatedAt         time.Time `json:"createdAt"`
}

type AnalysisTaskResponse struct {
	Redirect string        `json:"redirect"`
	Task     []ContentPart `json:"task"`
}
