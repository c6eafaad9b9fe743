package dto

// WizardUpdateRequest carries field edits. Nil fields are left untouched.
type WizardUpdateRequest struct {
	CandidateName *string `json:"candidateName"`
	Mode          *string `json:"mode"`
	Difficulty    *string `json:"difficulty"`
	Skills        *string `json:"skills"`
	Topic         *string `json:"topic"`
	QuestionCount *int    `json:"questionCount"`
}

type DraftDTO struct {
	CandidateName string  `json:"candidateName"`
	ResumeURL     *string `json:"resumeUrl"`
	Mode          string  `json:"mode"`
	Difficulty    string  `json:"difficulty"`
	Skills        string  `json:"skills"`
	Topic         string  `json:"topic"`
	QuestionCount int     `json:"questionCount"`
}

type NotificationDTO struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type WizardSnapshotDTO struct {
	ID            string            `json:"id"`
	Step          int               `json:"step"`
	StepName      string            `json:"stepName"`
	Stage         string            `json:"stage"`
	Draft         DraftDTO          `json:"draft"`
	Notifications []NotificationDTO `json:"notifications"`
	Redirect      string            `json:"redirect,omitempty"`
}
