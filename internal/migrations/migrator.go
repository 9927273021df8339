// Package migrations holds schema changes AutoMigrate cannot express,
// applied once each and recorded in schema_migrations.
package migrations

import (
	"fmt"
	"time"

	"github.com/pushp314/derive-duel-backend/pkg/logger"
	"gorm.io/gorm"
)

type Migration struct {
	ID        string
	Name      string
	Up        func(db *gorm.DB) error
	DependsOn []string
}

// MigrationRecord marks an applied migration
type MigrationRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db, migrations: All()}
}

// Run applies pending migrations in order, each in its own transaction
func (m *Migrator) Run() error {
	if err := m.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var applied []MigrationRecord
	if err := m.db.Find(&applied).Error; err != nil {
		return fmt.Errorf("fetch applied migrations: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, r := range applied {
		done[r.ID] = true
	}

	for _, mig := range m.migrations {
		if done[mig.ID] {
			continue
		}
		for _, dep := range mig.DependsOn {
			if !done[dep] {
				return fmt.Errorf("migration %s depends on %s which is not applied", mig.ID, dep)
			}
		}

		logger.Info().Str("migration", mig.ID).Msg("Running migration")
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: mig.ID, Name: mig.Name}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.ID, err)
		}
		done[mig.ID] = true
	}
	return nil
}

// All returns every migration in apply order
func All() []Migration {
	return []Migration{
		Migration001DuelLookupIndex(),
		Migration002SubmissionHistoryIndex(),
	}
}
