package seeds

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pushp314/derive-duel-backend/internal/models"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

//go:embed proofs.yaml
var defaultProofs []byte

type proofFile struct {
	Proofs []proofEntry `yaml:"proofs"`
}

type proofEntry struct {
	Title              string   `yaml:"title"`
	Author             string   `yaml:"author"`
	Description        string   `yaml:"description"`
	Content            string   `yaml:"content"`
	MathematicianProof string   `yaml:"mathematician_proof"`
	Difficulty         string   `yaml:"difficulty"`
	TimeEstimate       string   `yaml:"time_estimate"`
	Year               *int     `yaml:"year"`
	Category           string   `yaml:"category"`
	SourceText         string   `yaml:"source_text"`
	SourceURL          string   `yaml:"source_url"`
	Hints              []string `yaml:"hints"`
}

// DefaultProofs parses the bundled proof set
func DefaultProofs() ([]models.Proof, error) {
	return LoadProofs(defaultProofs)
}

// LoadProofs parses a YAML proof file. Every entry needs a title and a
// reference solution.
func LoadProofs(data []byte) ([]models.Proof, error) {
	var file proofFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse proofs: %w", err)
	}

	proofs := make([]models.Proof, 0, len(file.Proofs))
	seen := make(map[string]bool)
	for i, e := range file.Proofs {
		title := strings.TrimSpace(e.Title)
		if title == "" || strings.TrimSpace(e.Content) == "" {
			return nil, fmt.Errorf("proof %d: title and content are required", i)
		}
		if seen[title] {
			return nil, fmt.Errorf("proof %q listed twice", title)
		}
		seen[title] = true

		difficulty := models.Difficulty(strings.ToLower(e.Difficulty))
		if difficulty == "" {
			difficulty = models.DifficultyMedium
		}
		if !difficulty.Valid() {
			return nil, fmt.Errorf("proof %q: unknown difficulty %q", title, e.Difficulty)
		}

		proofs = append(proofs, models.Proof{
			Title:              title,
			Author:             e.Author,
			Description:        strings.TrimSpace(e.Description),
			Content:            strings.TrimSpace(e.Content),
			MathematicianProof: strings.TrimSpace(e.MathematicianProof),
			Difficulty:         difficulty,
			TimeEstimate:       e.TimeEstimate,
			Year:               e.Year,
			Category:           e.Category,
			SourceText:         e.SourceText,
			SourceURL:          e.SourceURL,
			Hints:              e.Hints,
		})
	}
	return proofs, nil
}

// SeedProofs inserts new proofs and refreshes existing ones matched by title
func SeedProofs(ctx context.Context, db *gorm.DB, proofs []models.Proof) (created, updated int, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range proofs {
			var existing models.Proof
			err := tx.Where("title = ?", p.Title).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				p := p
				if err := tx.Create(&p).Error; err != nil {
					return fmt.Errorf("create %q: %w", p.Title, err)
				}
				created++
				logger.Info().Str("title", p.Title).Msg("Proof added")
			case err != nil:
				return err
			default:
				p.ID = existing.ID
				p.CreatedAt = existing.CreatedAt
				if err := tx.Save(&p).Error; err != nil {
					return fmt.Errorf("update %q: %w", p.Title, err)
				}
				updated++
			}
		}
		return nil
	})
	return created, updated, err
}
