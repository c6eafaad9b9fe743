package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every combination of the four required inputs: submission goes through
// only when none is missing.
func TestInterviewUsecase_CreateGuardCombinations(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		noName, noSkills, noTopic, noUser := mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0

		t.Run(fmt.Sprintf("name=%t,skills=%t,topic=%t,user=%t", !noName, !noSkills, !noTopic, !noUser), func(t *testing.T) {
			store := &fakeStore{documentID: "doc-1"}
			uc := NewInterviewUsecase(store, time.Second)

			draft := validDraft()
			if noName {
				draft.CandidateName = ""
			}
			if noSkills {
				draft.Skills = ""
			}
			if noTopic {
				draft.Topic = ""
			}
			auth := UserSession{ID: "user-7"}
			if noUser {
				auth = UserSession{}
			}

			record, err := uc.Create(context.Background(), draft, auth)
			if mask == 0 {
				require.NoError(t, err)
				assert.Equal(t, "doc-1", record.DocumentID)
				assert.Len(t, store.Payloads(), 1)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Nil(t, record)
			assert.Empty(t, store.Payloads())

			switch {
			case noName:
				assert.Equal(t, MsgProvideName, verr.Message)
			case noUser:
				assert.Equal(t, MsgMustLogIn, verr.Message)
			case noSkills:
				assert.Equal(t, MsgProvideSkills, verr.Message)
			default:
				assert.Equal(t, MsgProvideTopic, verr.Message)
			}
		})
	}
}

func TestInterviewUsecase_CreateStoreFailure(t *testing.T) {
	uc := NewInterviewUsecase(&fakeStore{createErr: errors.New("boom")}, time.Second)
	_, err := uc.Create(context.Background(), validDraft(), UserSession{ID: "user-7"})
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestInterviewUsecase_CreateWithoutIdentifier(t *testing.T) {
	uc := NewInterviewUsecase(&fakeStore{documentID: ""}, time.Second)
	_, err := uc.Create(context.Background(), validDraft(), UserSession{ID: "user-7"})
	assert.Error(t, err)
}

func TestDraftFromRequest(t *testing.T) {
	draft, err := DraftFromRequest(dto.CreateInterviewRequest{
		CandidateName: "Jane Doe",
		Skills:        "go rust",
		Topic:         "Backend Developer",
		Difficulty:    "hard",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ModeTechnical, draft.Mode)
	assert.Equal(t, model.DifficultyHard, draft.Difficulty)
	assert.Equal(t, model.DefaultQuestionCount, draft.QuestionCount)

	draft, err = DraftFromRequest(dto.CreateInterviewRequest{QuestionCount: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, draft.QuestionCount)
}

func TestDraftFromRequest_InvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateInterviewRequest
		field   string
		message string
	}{
		{name: "mode", req: dto.CreateInterviewRequest{Mode: "Casual"}, field: "mode", message: MsgInvalidMode},
		{name: "difficulty", req: dto.CreateInterviewRequest{Difficulty: "extreme"}, field: "difficulty", message: MsgInvalidDifficulty},
		{name: "question count", req: dto.CreateInterviewRequest{QuestionCount: 3}, field: "questionCount", message: MsgInvalidQuestionCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DraftFromRequest(tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
			assert.NotContains(t, verr.Message, "Key:")
		})
	}
}

func TestSetQuestionCount_FollowsModelLengths(t *testing.T) {
	draft := NewInterviewDraft()
	for _, n := range model.QuestionCounts {
		assert.NoError(t, draft.SetQuestionCount(n))
		assert.Equal(t, n, draft.QuestionCount)
	}
	assert.Error(t, draft.SetQuestionCount(7))
	assert.Equal(t, model.QuestionCounts[len(model.QuestionCounts)-1], draft.QuestionCount)
}

func TestInterviewUsecase_ListForUser(t *testing.T) {
	now := time.Now()
	store := &fakeStore{records: []model.Interview{
		{DocumentID: "old", UserID: "user-7", CreatedAt: now.Add(-2 * time.Hour)},
		{DocumentID: "other", UserID: "user-8", CreatedAt: now},
		{DocumentID: "new", UserID: "user-7", CreatedAt: now.Add(-time.Minute)},
	}}
	uc := NewInterviewUsecase(store, time.Second)

	list, err := uc.ListForUser(context.Background(), "user-7")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].DocumentID)
	assert.Equal(t, "old", list[1].DocumentID)

	_, err = uc.ListForUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	found, err := uc.FindForUser(context.Background(), "user-7", "old")
	require.NoError(t, err)
	assert.Equal(t, "old", found.DocumentID)

	_, err = uc.FindForUser(context.Background(), "user-7", "other")
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}
