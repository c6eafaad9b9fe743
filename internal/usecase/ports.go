package usecase

import (
	"context"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
)

// ResumeFile is a user-selected resume held in memory for the upload call.
type ResumeFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores a resume and returns its public URL. An empty URL with a
// nil error means the gateway did not accept the file.
type Uploader interface {
	Upload(ctx context.Context, file ResumeFile) (string, error)
}

// Extractor sends chat messages to the resume model and returns its raw text.
type Extractor interface {
	Extract(ctx context.Context, messages []dto.ChatMessage) (string, error)
}

// InterviewStore is the CMS collection of interview records.
type InterviewStore interface {
	Create(ctx context.Context, payload dto.CreateInterviewPayload) (*model.Interview, error)
	ListByUser(ctx context.Context, userID string) ([]model.Interview, error)
}

// AuthState exposes the identity of the signed-in user, if any.
type AuthState interface {
	UserID() (string, bool)
}

// UserSession is the AuthState built from a verified bearer token.
type UserSession struct {
	ID string
}

func (s UserSession) UserID() (string, bool) {
	return s.ID, s.ID != ""
}
