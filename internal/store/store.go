// Package store is the persistence adapter for proofs, submissions and
// duels.
package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pushp314/derive-duel-backend/internal/models"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the handle for health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}

// ProofListCachePrefix namespaces cached proof listings
const ProofListCachePrefix = "proofs:list:"

// ProofFilter narrows ListProofs. Zero values match everything.
type ProofFilter struct {
	Difficulty models.Difficulty
	Category   string
	MinYear    *int
	MaxYear    *int
}

func (s *Store) ListProofs(ctx context.Context, f ProofFilter) ([]models.Proof, error) {
	query := s.db.WithContext(ctx).Model(&models.Proof{})
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.MinYear != nil {
		query = query.Where("year >= ?", *f.MinYear)
	}
	if f.MaxYear != nil {
		query = query.Where("year <= ?", *f.MaxYear)
	}

	var proofs []models.Proof
	if err := query.Order("title ASC").Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

func (s *Store) GetProof(ctx context.Context, id string) (*models.Proof, error) {
	var p models.Proof
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrNotFound)
	}
	return &p, nil
}

// RandomProof picks uniformly from the pool, ErrNoProofs when it is empty
func (s *Store) RandomProof(ctx context.Context) (*models.Proof, error) {
	return s.proofAt(ctx, func(count int64) int64 { return rand.Int64N(count) })
}

// DailyProof returns the same proof for every caller on a given UTC day
func (s *Store) DailyProof(ctx context.Context, day time.Time) (*models.Proof, error) {
	days := day.UTC().Unix() / int64(24*time.Hour/time.Second)
	return s.proofAt(ctx, func(count int64) int64 {
		idx := days % count
		if idx < 0 {
			idx += count
		}
		return idx
	})
}

func (s *Store) proofAt(ctx context.Context, index func(count int64) int64) (*models.Proof, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Proof{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.ErrNoProofs
	}

	var p models.Proof
	if err := db.Order("id ASC").Offset(int(index(count))).Limit(1).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, apperrors.ErrNoProofs
	}
	return &p, nil
}

// CreateSubmission stores the attempt and its feedback together
func (s *Store) CreateSubmission(ctx context.Context, sub *models.Submission, fb *models.ProofFeedback) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createSubmissionTx(tx, sub, fb)
	})
}

func createSubmissionTx(tx *gorm.DB, sub *models.Submission, fb *models.ProofFeedback) error {
	if err := tx.Create(sub).Error; err != nil {
		return err
	}
	if fb == nil {
		return nil
	}
	fb.SubmissionID = sub.ID
	return tx.Create(fb).Error
}

// ListSubmissions returns the newest attempts at a proof, optionally for one user
func (s *Store) ListSubmissions(ctx context.Context, proofID, userName string, limit int) ([]models.Submission, error) {
	query := s.db.WithContext(ctx).Where("proof_id = ?", proofID)
	if userName != "" {
		query = query.Where("user_name = ?", userName)
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var subs []models.Submission
	if err := query.Order("created_at DESC").Limit(limit).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) CreateDuel(ctx context.Context, d *models.Duel) error {
	return s.db.WithContext(ctx).Create(d).Error
}

// FindWaitingDuel looks up a joinable duel by its code
func (s *Store) FindWaitingDuel(ctx context.Context, code string) (*models.Duel, error) {
	var d models.Duel
	err := s.db.WithContext(ctx).
		Where("code = ? AND status = ?", code, models.DuelStatusWaiting).
		Order("created_at DESC").
		First(&d).Error
	if err != nil {
		return nil, notFound(err, apperrors.ErrDuelNotFound)
	}
	return &d, nil
}

func (s *Store) GetDuel(ctx context.Context, id string) (*models.Duel, error) {
	var d models.Duel
	if err := s.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrDuelNotFound)
	}
	return &d, nil
}

// UpdateDuel runs mutate against the current row and writes the result
// back only if nobody changed the row in between. The row is locked
// where the dialect supports it; the conditional UPDATE covers the rest.
// A lost race returns ErrInvalidState.
func (s *Store) UpdateDuel(ctx context.Context, id string, mutate func(d *models.Duel) error) (*models.Duel, error) {
	var out *models.Duel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := updateDuelTx(tx, id, func(_ *gorm.DB, d *models.Duel) error { return mutate(d) })
		out = d
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordDuelSubmission applies mutate like UpdateDuel and stores the
// attempt and its feedback in the same transaction. sub.DuelID is set
// to id.
func (s *Store) RecordDuelSubmission(ctx context.Context, id string, mutate func(d *models.Duel) error, sub *models.Submission, fb *models.ProofFeedback) (*models.Duel, error) {
	var out *models.Duel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := updateDuelTx(tx, id, func(_ *gorm.DB, d *models.Duel) error { return mutate(d) })
		if err != nil {
			return err
		}
		duelID := d.ID
		sub.DuelID = &duelID
		if err := createSubmissionTx(tx, sub, fb); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func updateDuelTx(tx *gorm.DB, id string, mutate func(tx *gorm.DB, d *models.Duel) error) (*models.Duel, error) {
	var d models.Duel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrDuelNotFound)
	}

	guard := tx.Model(&models.Duel{}).Where("id = ? AND status = ?", id, d.Status)
	guard = whereNullable(guard, "creator_progress", d.CreatorProgress)
	guard = whereNullable(guard, "opponent_progress", d.OpponentProgress)
	guard = whereNullable(guard, "opponent_name", d.OpponentName)

	if err := mutate(tx, &d); err != nil {
		return nil, err
	}

	res := guard.Updates(map[string]interface{}{
		"opponent_name":     d.OpponentName,
		"creator_progress":  d.CreatorProgress,
		"opponent_progress": d.OpponentProgress,
		"status":            d.Status,
		"winner":            d.Winner,
		"started_at":        d.StartedAt,
		"completed_at":      d.CompletedAt,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected != 1 {
		return nil, fmt.Errorf("%w: duel changed concurrently", apperrors.ErrInvalidState)
	}
	return &d, nil
}

func whereNullable[T any](q *gorm.DB, column string, v *T) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
