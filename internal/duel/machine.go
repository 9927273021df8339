// Package duel arbitrates two-player proof duels:
// waiting -> active -> completed, one submission per participant.
package duel

import (
	"strings"
	"time"

	"github.com/pushp314/derive-duel-backend/internal/models"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
)

type Role string

const (
	RoleCreator  Role = "creator"
	RoleOpponent Role = "opponent"
)

// Join seats the opponent and starts the clock
func Join(d *models.Duel, name string, now time.Time) error {
	if d.Status != models.DuelStatusWaiting || d.OpponentName != nil {
		return apperrors.ErrInvalidState
	}
	// Identical names would make name-based submission ambiguous
	if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(d.CreatorName)) {
		return apperrors.ErrInvalidParticipant
	}

	d.OpponentName = &name
	d.Status = models.DuelStatusActive
	d.StartedAt = &now
	return nil
}

// RoleOf maps a display name to its seat
func RoleOf(d *models.Duel, name string) (Role, error) {
	switch {
	case name == "":
		return "", apperrors.ErrInvalidParticipant
	case name == d.CreatorName:
		return RoleCreator, nil
	case d.OpponentName != nil && name == *d.OpponentName:
		return RoleOpponent, nil
	}
	return "", apperrors.ErrInvalidParticipant
}

// NameOf returns the display name seated at role
func NameOf(d *models.Duel, role Role) string {
	if role == RoleCreator {
		return d.CreatorName
	}
	return d.Opponent()
}

// CanSubmit checks that role may still record progress
func CanSubmit(d *models.Duel, role Role) error {
	if d.Status != models.DuelStatusActive {
		return apperrors.ErrInvalidState
	}
	if own, _ := slots(d, role); *own != nil {
		return apperrors.ErrInvalidState
	}
	return nil
}

// Record writes role's progress. The second write settles the duel.
func Record(d *models.Duel, role Role, progress int, now time.Time) error {
	if err := CanSubmit(d, role); err != nil {
		return err
	}

	own, other := slots(d, role)
	p := clamp(progress)
	*own = &p

	if *other == nil {
		return nil
	}

	winner := Winner(d)
	d.Winner = &winner
	d.Status = models.DuelStatusCompleted
	d.CompletedAt = &now
	return nil
}

// Winner compares both progress values: higher wins, equal is a tie.
// Empty until both are recorded.
func Winner(d *models.Duel) string {
	if d.CreatorProgress == nil || d.OpponentProgress == nil {
		return ""
	}
	switch c, o := *d.CreatorProgress, *d.OpponentProgress; {
	case c > o:
		return d.CreatorName
	case o > c:
		return d.Opponent()
	default:
		return models.WinnerTie
	}
}

func slots(d *models.Duel, role Role) (own, other **int) {
	if role == RoleCreator {
		return &d.CreatorProgress, &d.OpponentProgress
	}
	return &d.OpponentProgress, &d.CreatorProgress
}

func clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
