package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-notes-api/internal/config"
	"github.com/jwalitptl/patient-notes-api/internal/repository/postgres"
	"github.com/jwalitptl/patient-notes-api/internal/seed"
	"github.com/jwalitptl/patient-notes-api/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "reseed even if data exists")
	clearOnly := flag.Bool("clear-only", false, "only clear data, don't seed")
	flag.Parse()

	logger.Setup(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	if *clearOnly {
		if err := seed.Clear(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to clear database")
		}
		return
	}

	patientRepo := postgres.NewPatientRepository(db)
	noteRepo := postgres.NewNoteRepository(db)

	if err := seed.Seed(ctx, db, patientRepo, noteRepo, *force); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}
}
