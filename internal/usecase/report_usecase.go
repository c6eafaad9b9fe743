package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
	"github.com/google/uuid"
)

const (
	AnalysisPrompt = "Analyse my resume properly and score it for ats and give me tips to improve"
	ChatTaskPath   = "/chat?task=true"

	MsgReportsFailed = "Failed to load reports. Please refresh."
	MsgReportsEmpty  = "No reports available yet."
	untitledTitle    = "Untitled Interview"
)

type ReportState string

const (
	ReportLoading ReportState = "loading"
	ReportError   ReportState = "error"
	ReportEmpty   ReportState = "empty"
	ReportReady   ReportState = "ready"
)

// ReportBrowser is one listing of a user's interviews. It starts in the
// loading state and Load moves it to exactly one of error, empty or ready.
type ReportBrowser struct {
	interviews *InterviewUsecase
	state      ReportState
	items      []model.Interview
	err        error
}

func (b *ReportBrowser) Load(ctx context.Context, userID string) ReportState {
	items, err := b.interviews.ListForUser(ctx, userID)
	switch {
	case err != nil:
		b.state, b.err, b.items = ReportError, err, nil
	case len(items) == 0:
		b.state, b.err, b.items = ReportEmpty, nil, nil
	default:
		b.state, b.err, b.items = ReportReady, nil, items
	}
	return b.state
}

func (b *ReportBrowser) State() ReportState {
	return b.state
}

func (b *ReportBrowser) Err() error {
	return b.err
}

func (b *ReportBrowser) Interviews() []model.Interview {
	return b.items
}

// Message is the text shown for the non-list states.
func (b *ReportBrowser) Message() string {
	switch b.state {
	case ReportError:
		return MsgReportsFailed
	case ReportEmpty:
		return MsgReportsEmpty
	case ReportLoading:
		return "Loading interview reports..."
	}
	return ""
}

// Cards renders the summary cards for the ready state.
func (b *ReportBrowser) Cards() []dto.ReportCardDTO {
	cards := make([]dto.ReportCardDTO, 0, len(b.items))
	for _, interview := range b.items {
		cards = append(cards, ReportCard(interview))
	}
	return cards
}

func ReportCard(interview model.Interview) dto.ReportCardDTO {
	title := strings.TrimSpace(interview.Details)
	if title == "" {
		title = untitledTitle
	}
	id := ""
	if interview.ID != uuid.Nil {
		id = interview.ID.String()
	}
	return dto.ReportCardDTO{
		ID:                id,
		DocumentID:        interview.DocumentID,
		Title:             title,
		CandidateName:     interview.CandidateName,
		Mode:              interview.Mode,
		Difficulty:        interview.Difficulty,
		Skills:            interview.Skills,
		NumberOfQuestions: interview.NumberOfQuestions,
		HasResume:         interview.HasResume(),
		HasReport:         hasReport(interview.Report),
		Retake:            InterviewPath(interview.DocumentID),
		CreatedAt:         interview.CreatedAt,
	}
}

// ParseReport decodes a stored report. A JSON string holding a document and
// the document itself produce the same value.
func ParseReport(raw []byte) (any, error) {
	data := bytes.TrimSpace(raw)
	if !hasReport(data) {
		return nil, ErrNoReport
	}
	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
		}
		data = bytes.TrimSpace([]byte(encoded))
		if !hasReport(data) {
			return nil, ErrNoReport
		}
	}

	var report any
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	if report == nil {
		return nil, ErrNoReport
	}
	return report, nil
}

func hasReport(raw []byte) bool {
	data := bytes.TrimSpace(raw)
	return len(data) > 0 && !bytes.Equal(data, []byte("null"))
}

// BuildAnalysisTask is the payload the resume-analysis chat starts from.
func BuildAnalysisTask(resumeURL string) []dto.ContentPart {
	return []dto.ContentPart{
		dto.TextPart(AnalysisPrompt),
		dto.ImagePart(resumeURL),
	}
}

type ReportUsecase struct {
	interviews *InterviewUsecase
	tasks      *TaskStore
}

func NewReportUsecase(interviews *InterviewUsecase, tasks *TaskStore) *ReportUsecase {
	return &ReportUsecase{interviews: interviews, tasks: tasks}
}

func (uc *ReportUsecase) Browser() *ReportBrowser {
	return &ReportBrowser{interviews: uc.interviews, state: ReportLoading}
}

// Report returns the parsed report of one of the user's interviews.
func (uc *ReportUsecase) Report(ctx context.Context, userID, documentID string) (*model.Interview, any, error) {
	interview, err := uc.interviews.FindForUser(ctx, userID, documentID)
	if err != nil {
		return nil, nil, err
	}
	report, err := ParseReport(interview.Report)
	if err != nil {
		return interview, nil, err
	}
	return interview, report, nil
}

// SeedAnalysis stores the resume-analysis task for the chat view. Interviews
// without a resume store nothing.
func (uc *ReportUsecase) SeedAnalysis(ctx context.Context, userID, documentID string) ([]dto.ContentPart, error) {
	interview, err := uc.interviews.FindForUser(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if !interview.HasResume() {
		return nil, ErrNoResume
	}
	task := BuildAnalysisTask(*interview.Resume)
	uc.tasks.Put(userID, TaskKey, task)
	return task, nil
}

// TakeTask hands the stored task to the chat view once.
func (uc *ReportUsecase) TakeTask(userID, key string) ([]dto.ContentPart, bool) {
	return uc.tasks.Take(userID, key)
}
