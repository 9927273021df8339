package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pushp314/derive-duel-backend/pkg/utils"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulties
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Proof is a reference problem. Read-only to the evaluation and duel flows.
type Proof struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string `gorm:"size:255;not null;index" json:"title"`
	Author      string `json:"author"`
	Description string `gorm:"type:text" json:"description"` // Problem statement

	// Canonical solution, never sent to clients
	Content            string `gorm:"type:text" json:"content,omitempty"`
	MathematicianProof string `gorm:"type:text" json:"mathematicianProof,omitempty"`

	Difficulty   Difficulty     `gorm:"type:varchar(16);default:'medium'" json:"difficulty"`
	TimeEstimate string         `json:"timeEstimate"`
	Year         *int           `gorm:"index" json:"year,omitempty"` // Negative = BCE
	Category     string         `gorm:"size:100;index" json:"category,omitempty"`
	SourceText   string         `gorm:"type:text" json:"sourceText,omitempty"`
	SourceURL    string         `json:"sourceUrl,omitempty"`
	Hints        pq.StringArray `gorm:"type:text" json:"hints,omitempty"` // Stored as an array literal

	CreatedAt time.Time `json:"createdAt"`
}

func (Proof) TableName() string {
	return "proofs"
}

func (p *Proof) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = utils.GenerateID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return
}

// Public returns a copy safe to send to a solver
func (p Proof) Public() Proof {
	p.Content = ""
	return p
}

// SourceContext joins the available source fields into one line of
// historical context for the evaluator
func (p Proof) SourceContext() string {
	switch {
	case p.SourceText != "" && p.SourceURL != "":
		return p.SourceText + " (" + p.SourceURL + ")"
	case p.SourceText != "":
		return p.SourceText
	default:
		return p.SourceURL
	}
}
