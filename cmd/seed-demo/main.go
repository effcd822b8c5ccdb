package main

import (
	"context"
	"time"

	"github.com/heimweh17/GatorGrades/internal/config"
	"github.com/heimweh17/GatorGrades/internal/database"
	"github.com/heimweh17/GatorGrades/internal/fixture"
	"github.com/heimweh17/GatorGrades/internal/logger"
)

// seed-demo loads the demo course into an empty database. It replaces
// the implicit seed-on-first-request behavior of earlier prototypes:
// seeding only ever happens by running this command.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := fixture.SeedDemo(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().Msg("Demo data seeded")
}
