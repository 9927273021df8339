package main

import (
	"context"
	"flag"
	"os"

	"github.com/pushp314/derive-duel-backend/internal/config"
	"github.com/pushp314/derive-duel-backend/internal/database"
	"github.com/pushp314/derive-duel-backend/internal/models"
	"github.com/pushp314/derive-duel-backend/internal/seeds"
	"github.com/pushp314/derive-duel-backend/internal/store"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

func main() {
	file := flag.String("file", "", "YAML proof file (defaults to the bundled set)")
	flag.Parse()

	config.LoadConfig()
	logger.Init(config.AppConfig.Env)
	database.Connect()
	database.InitRedis()

	if err := database.Migrate(database.DB); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	var (
		proofs []models.Proof
		err    error
	)
	if *file == "" {
		proofs, err = seeds.DefaultProofs()
	} else {
		var data []byte
		if data, err = os.ReadFile(*file); err == nil {
			proofs, err = seeds.LoadProofs(data)
		}
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load proofs")
	}

	ctx := context.Background()
	created, updated, err := seeds.SeedProofs(ctx, database.DB, proofs)
	if err != nil {
		logger.Fatal().Err(err).Msg("Seeding failed")
	}

	if err := database.NewCache(database.Redis).Invalidate(ctx, store.ProofListCachePrefix+"*"); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear cached proof lists")
	}

	logger.Info().Int("created", created).Int("updated", updated).Msg("Seeding complete")
}
