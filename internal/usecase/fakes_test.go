package usecase

import (
	"context"
	"sync"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
)

type fakeUploader struct {
	mu    sync.Mutex
	url   string
	err   error
	calls int
	// release, when set, holds Upload until it is closed
	started chan struct{}
	release chan struct{}
}

func (f *fakeUploader) Upload(ctx context.Context, file ResumeFile) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.url, f.err
}

func (f *fakeUploader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeExtractor struct {
	mu       sync.Mutex
	raw      string
	err      error
	calls    int
	messages []dto.ChatMessage
}

func (f *fakeExtractor) Extract(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.messages = messages
	return f.raw, f.err
}

type fakeStore struct {
	mu         sync.Mutex
	documentID string
	createErr  error
	listErr    error
	payloads   []dto.CreateInterviewPayload
	records    []model.Interview
}

func (f *fakeStore) Create(ctx context.Context, payload dto.CreateInterviewPayload) (*model.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.Interview{
		DocumentID:        f.documentID,
		CandidateName:     payload.CandidateName,
		Resume:            payload.Resume,
		Mode:              payload.Mode,
		Difficulty:        payload.Difficulty,
		Skills:            payload.Skills,
		Details:           payload.Details,
		NumberOfQuestions: payload.NumberOfQuestions,
		UserID:            payload.User,
	}, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]model.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Interview
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Payloads() []dto.CreateInterviewPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.CreateInterviewPayload(nil), f.payloads...)
}
