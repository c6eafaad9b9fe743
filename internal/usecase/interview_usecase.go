package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
)

const interviewPathPrefix = "/interview/"

// InterviewPath is where the interview-taking view for a record lives.
func InterviewPath(documentID string) string {
	return interviewPathPrefix + documentID
}

type InterviewUsecase struct {
	store   InterviewStore
	timeout time.Duration
}

func NewInterviewUsecase(store InterviewStore, timeout time.Duration) *InterviewUsecase {
	return &InterviewUsecase{store: store, timeout: timeout}
}

// Create validates the draft and writes it to the CMS. Validation failures
// return a *ValidationError and the store is never called.
func (uc *InterviewUsecase) Create(ctx context.Context, draft InterviewDraft, auth AuthState) (*model.Interview, error) {
	userID, err := draft.Validate(auth)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	record, err := uc.store.Create(ctx, draft.Payload(userID))
	if err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}
	if record == nil || record.DocumentID == "" {
		return nil, fmt.Errorf("create interview: store returned no identifier")
	}
	return record, nil
}

// DraftFromRequest builds a draft for clients that post the whole
// configuration at once. Empty enum fields fall back to the defaults.
func DraftFromRequest(req dto.CreateInterviewRequest) (InterviewDraft, error) {
	if err := validate.Struct(req); err != nil {
		return InterviewDraft{}, toValidationError(err)
	}
	draft := NewInterviewDraft()
	draft.CandidateName = req.CandidateName
	draft.ResumeURL = req.Resume
	draft.Skills = req.Skills
	draft.Topic = req.Topic
	if req.Mode != "" {
		draft.Mode = req.Mode
	}
	if req.Difficulty != "" {
		draft.Difficulty = req.Difficulty
	}
	if req.QuestionCount != 0 {
		draft.QuestionCount = req.QuestionCount
	}
	return draft, nil
}

// ListForUser returns the user's interviews, newest first.
func (uc *InterviewUsecase) ListForUser(ctx context.Context, userID string) ([]model.Interview, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	interviews, err := uc.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	sort.SliceStable(interviews, func(i, j int) bool {
		return interviews[i].CreatedAt.After(interviews[j].CreatedAt)
	})
	return interviews, nil
}

// FindForUser looks a record up through the list operation, the only read the
// CMS contract offers.
func (uc *InterviewUsecase) FindForUser(ctx context.Context, userID, documentID string) (*model.Interview, error) {
	interviews, err := uc.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range interviews {
		if interviews[i].DocumentID == documentID {
			return &interviews[i], nil
		}
	}
	return nil, ErrInterviewNotFound
}

func (uc *InterviewUsecase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}
