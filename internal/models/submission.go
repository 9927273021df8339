package models

import (
	"time"

	"github.com/pushp314/derive-duel-backend/pkg/utils"
	"gorm.io/gorm"
)

// Submission is one user's attempt at a proof. Immutable once stored.
type Submission struct {
	ID       string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserName string  `gorm:"size:100;not null;index" json:"userName"`
	ProofID  string  `gorm:"size:36;not null;index" json:"proofId"`
	DuelID   *string `gorm:"size:36;index" json:"duelId,omitempty"`

	Content  string `gorm:"type:text" json:"content"`
	Progress int    `json:"progress"`
	Feedback string `gorm:"type:text" json:"feedback,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	Proof Proof `gorm:"foreignKey:ProofID" json:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = utils.GenerateID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return
}

// ProofFeedback is the evaluator verdict stored alongside a submission
type ProofFeedback struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SubmissionID string    `gorm:"size:36;not null;index" json:"submissionId"`
	IsCorrect    bool      `json:"isCorrect"`
	OnRightTrack bool      `json:"onRightTrack"`
	FeedbackText string    `gorm:"type:text" json:"feedbackText"`
	Source       string    `json:"source"` // ai, local
	CreatedAt    time.Time `json:"createdAt"`

	Submission Submission `gorm:"foreignKey:SubmissionID" json:"-"`
}

func (ProofFeedback) TableName() string {
	return "proof_feedback"
}

func (f *ProofFeedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = utils.GenerateID()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return
}
