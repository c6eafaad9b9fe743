package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ModeTechnical = "Technical"
	ModeHR        = "HR"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	DefaultQuestionCount = 10
)

// QuestionCounts lists the interview lengths a user can pick.
var QuestionCounts = []int{2, 5, 10, 15, 20}

// Interview is the persisted interview record. Report is written by the
// interview-taking flow and is either a JSON object or a JSON-encoded string.
type Interview struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocumentID        string         `gorm:"type:varchar(64);uniqueIndex" json:"documentId"`
	CandidateName     string         `gorm:"type:text" json:"candidateName"`
	Resume            *string        `gorm:"type:text" json:"resume"`
	Mode              string         `gorm:"type:varchar(20)" json:"mode"`
	Difficulty        string         `gorm:"type:varchar(20)" json:"difficulty"`
	Skills            string         `gorm:"type:text" json:"skills"`
	Details           string         `gorm:"type:text" json:"details"`
	NumberOfQuestions int            `json:"numberOfQuestions"`
	UserID            string         `gorm:"type:varchar(64);index" json:"user"`
	Report            datatypes.JSON `gorm:"type:jsonb" json:"report"`
	CreatedAt         time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func (i *Interview) TableName() string {
	return "interviews"
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.DocumentID == "" {
		i.DocumentID = i.ID.String()
	}
	return nil
}

func (i *Interview) HasResume() bool {
	return i.Resume != nil && *i.Resume != ""
}
