package seeds

import (
	"context"
	"testing"

	"github.com/pushp314/derive-duel-backend/internal/database"
	"github.com/pushp314/derive-duel-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProofs(t *testing.T) {
	proofs, err := DefaultProofs()
	require.NoError(t, err)
	require.NotEmpty(t, proofs)

	var euclid *models.Proof
	for i := range proofs {
		assert.NotEmpty(t, proofs[i].Content, proofs[i].Title)
		if proofs[i].Title == "Infinitude of primes" {
			euclid = &proofs[i]
		}
	}
	require.NotNil(t, euclid)
	assert.Equal(t, -300, *euclid.Year)
	assert.Equal(t, models.DifficultyEasy, euclid.Difficulty)
	assert.Len(t, euclid.Hints, 2)
}

func TestLoadProofs_Rejects(t *testing.T) {
	_, err := LoadProofs([]byte("proofs:\n  - title: No content\n"))
	assert.Error(t, err)

	_, err = LoadProofs([]byte("proofs:\n  - title: A\n    content: x\n    difficulty: legendary\n"))
	assert.Error(t, err)

	_, err = LoadProofs([]byte("proofs:\n  - title: A\n    content: x\n  - title: A\n    content: y\n"))
	assert.Error(t, err)

	proofs, err := LoadProofs([]byte("proofs:\n  - title: A\n    content: x\n"))
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyMedium, proofs[0].Difficulty)
}

func TestSeedProofs_Upsert(t *testing.T) {
	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	ctx := context.Background()

	proofs, err := DefaultProofs()
	require.NoError(t, err)

	created, updated, err := SeedProofs(ctx, db, proofs)
	require.NoError(t, err)
	assert.Equal(t, len(proofs), created)
	assert.Equal(t, 0, updated)

	var before models.Proof
	require.NoError(t, db.Where("title = ?", proofs[0].Title).First(&before).Error)

	proofs[0].Description = "changed"
	created, updated, err = SeedProofs(ctx, db, proofs)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, len(proofs), updated)

	var after models.Proof
	require.NoError(t, db.Where("title = ?", proofs[0].Title).First(&after).Error)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "changed", after.Description)

	var count int64
	db.Model(&models.Proof{}).Count(&count)
	assert.Equal(t, int64(len(proofs)), count)
}
