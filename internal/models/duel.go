package models

import (
	"time"

	"github.com/pushp314/derive-duel-backend/pkg/utils"
	"gorm.io/gorm"
)

type DuelStatus string

const (
	DuelStatusWaiting   DuelStatus = "waiting"
	DuelStatusActive    DuelStatus = "active"
	DuelStatusCompleted DuelStatus = "completed"
)

// WinnerTie is stored as the winner when both progress values are equal
const WinnerTie = "Tie"

// Duel is a two-participant session joined by code
type Duel struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code    string `gorm:"type:varchar(12);not null;index" json:"code"`
	ProofID string `gorm:"size:36;not null" json:"proofId"`

	CreatorName      string  `gorm:"size:100;not null" json:"creatorName"`
	OpponentName     *string `gorm:"size:100" json:"opponentName"`
	CreatorProgress  *int    `json:"creatorProgress"`
	OpponentProgress *int    `json:"opponentProgress"`

	Status DuelStatus `gorm:"type:varchar(16);not null;default:'waiting';index" json:"status"`
	Winner *string    `gorm:"size:100" json:"winner"`

	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`

	Proof Proof `gorm:"foreignKey:ProofID" json:"-"`
}

func (Duel) TableName() string {
	return "duels"
}

func (d *Duel) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = utils.GenerateID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.Status == "" {
		d.Status = DuelStatusWaiting
	}
	return
}

// Opponent returns the opponent name or "" while waiting
func (d *Duel) Opponent() string {
	if d.OpponentName == nil {
		return ""
	}
	return *d.OpponentName
}

// All lists the persisted models in migration order
func All() []interface{} {
	return []interface{}{
		&Proof{},
		&Submission{},
		&ProofFeedback{},
		&Duel{},
	}
}
