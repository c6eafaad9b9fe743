package repository

import (
	"context"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
	"gorm.io/gorm"
)

// InterviewRepository is the postgres-backed interview store used when no
// remote CMS is configured.
type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) Create(ctx context.Context, payload dto.CreateInterviewPayload) (*model.Interview, error) {
	interview := model.Interview{
		CandidateName:     payload.CandidateName,
		Resume:            payload.Resume,
		Mode:              payload.Mode,
		Difficulty:        payload.Difficulty,
		Skills:            payload.Skills,
		Details:           payload.Details,
		NumberOfQuestions: payload.NumberOfQuestions,
		UserID:            payload.User,
	}
	if err := r.db.WithContext(ctx).Create(&interview).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepository) ListByUser(ctx context.Context, userID string) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

