package usecase

import (
	"errors"
	"slices"
	"strings"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
	"github.com/go-playground/validator/v10"
)

const (
	MsgProvideName   = "Please provide candidate name"
	MsgMustLogIn     = "You must be logged in"
	MsgProvideSkills = "Please provide skills"
	MsgProvideTopic  = "Please provide job role"

	MsgInvalidMode          = "Mode must be Technical or HR"
	MsgInvalidDifficulty    = "Difficulty must be easy, medium or hard"
	MsgInvalidQuestionCount = "Number of questions must be 2, 5, 10, 15 or 20"
	MsgInvalidConfiguration = "Invalid interview configuration"
)

var validate = newValidator()

// newValidator registers question_count, which accepts the lengths listed in
// model.QuestionCounts.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("question_count", func(fl validator.FieldLevel) bool {
		return slices.Contains(model.QuestionCounts, int(fl.Field().Int()))
	})
	return v
}

// fieldErrors maps validator failures on draft fields to user-facing messages.
var fieldErrors = map[string]*ValidationError{
	"Mode":          {Field: "mode", Message: MsgInvalidMode},
	"Difficulty":    {Field: "difficulty", Message: MsgInvalidDifficulty},
	"QuestionCount": {Field: "questionCount", Message: MsgInvalidQuestionCount},
}

func toValidationError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if known, ok := fieldErrors[verrs[0].StructField()]; ok {
			return newValidationError(known.Field, known.Message)
		}
		return newValidationError(verrs[0].Field(), MsgInvalidConfiguration)
	}
	return newValidationError("request", MsgInvalidConfiguration)
}

// InterviewDraft is the client-held interview configuration the wizard edits.
type InterviewDraft struct {
	CandidateName string
	ResumeURL     *string
	Mode          string
	Difficulty    string
	Skills        string
	Topic         string
	QuestionCount int
}

func NewInterviewDraft() InterviewDraft {
	return InterviewDraft{
		Mode:          model.ModeTechnical,
		Difficulty:    model.DifficultyMedium,
		QuestionCount: model.DefaultQuestionCount,
	}
}

func (d *InterviewDraft) SetMode(mode string) error {
	if err := validate.Var(mode, "required,oneof=Technical HR"); err != nil {
		return newValidationError("mode", MsgInvalidMode)
	}
	d.Mode = mode
	return nil
}

func (d *InterviewDraft) SetDifficulty(difficulty string) error {
	if err := validate.Var(difficulty, "required,oneof=easy medium hard"); err != nil {
		return newValidationError("difficulty", MsgInvalidDifficulty)
	}
	d.Difficulty = difficulty
	return nil
}

func (d *InterviewDraft) SetQuestionCount(n int) error {
	if err := validate.Var(n, "question_count"); err != nil {
		return newValidationError("questionCount", MsgInvalidQuestionCount)
	}
	d.QuestionCount = n
	return nil
}

// Prefill copies every present, non-empty extracted field into the draft.
// Absent fields, and mode or difficulty values outside their enums, leave the
// current value in place.
func (d *InterviewDraft) Prefill(fields *dto.ExtractedResume) {
	if fields == nil {
		return
	}
	if fields.CandidateName != "" {
		d.CandidateName = fields.CandidateName
	}
	if fields.Skills != "" {
		d.Skills = fields.Skills
	}
	if fields.Topic != "" {
		d.Topic = fields.Topic
	}
	if mode, ok := canonicalMode(fields.Mode); ok {
		d.Mode = mode
	}
	if difficulty, ok := canonicalDifficulty(fields.Difficulty); ok {
		d.Difficulty = difficulty
	}
}

// Validate runs the submission guards in order and returns the user to
// attribute the interview to.
func (d InterviewDraft) Validate(auth AuthState) (string, error) {
	if strings.TrimSpace(d.CandidateName) == "" {
		return "", newValidationError("candidateName", MsgProvideName)
	}
	var userID string
	if auth != nil {
		userID, _ = auth.UserID()
	}
	if userID == "" {
		return "", newValidationError("user", MsgMustLogIn)
	}
	if NormalizeSkills(d.Skills) == "" {
		return "", newValidationError("skills", MsgProvideSkills)
	}
	if strings.TrimSpace(d.Topic) == "" {
		return "", newValidationError("topic", MsgProvideTopic)
	}
	return userID, nil
}

// Payload maps the draft onto the CMS record shape.
func (d InterviewDraft) Payload(userID string) dto.CreateInterviewPayload {
	var resume *string
	if d.ResumeURL != nil && *d.ResumeURL != "" {
		url := *d.ResumeURL
		resume = &url
	}
	count := d.QuestionCount
	if count == 0 {
		count = model.DefaultQuestionCount
	}
	return dto.CreateInterviewPayload{
		Resume:            resume,
		Mode:              d.Mode,
		Difficulty:        d.Difficulty,
		Skills:            NormalizeSkills(d.Skills),
		Details:           strings.TrimSpace(d.Topic),
		NumberOfQuestions: count,
		User:              userID,
		CandidateName:     strings.TrimSpace(d.CandidateName),
	}
}

func (d InterviewDraft) DTO() dto.DraftDTO {
	return dto.DraftDTO{
		CandidateName: d.CandidateName,
		ResumeURL:     d.ResumeURL,
		Mode:          d.Mode,
		Difficulty:    d.Difficulty,
		Skills:        d.Skills,
		Topic:         d.Topic,
		QuestionCount: d.QuestionCount,
	}
}

func canonicalMode(mode string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "technical":
		return model.ModeTechnical, true
	case "hr":
		return model.ModeHR, true
	}
	return "", false
}

func canonicalDifficulty(difficulty string) (string, bool) {
	switch d := strings.ToLower(strings.TrimSpace(difficulty)); d {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		return d, true
	}
	return "", false
}
