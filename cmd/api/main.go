package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-notes-api/internal/config"
	"github.com/jwalitptl/patient-notes-api/internal/handler"
	noteHandler "github.com/jwalitptl/patient-notes-api/internal/handler/note"
	patientHandler "github.com/jwalitptl/patient-notes-api/internal/handler/patient"
	summaryHandler "github.com/jwalitptl/patient-notes-api/internal/handler/summary"
	"github.com/jwalitptl/patient-notes-api/internal/llm"
	"github.com/jwalitptl/patient-notes-api/internal/repository/postgres"
	"github.com/jwalitptl/patient-notes-api/internal/router"
	noteService "github.com/jwalitptl/patient-notes-api/internal/service/note"
	patientService "github.com/jwalitptl/patient-notes-api/internal/service/patient"
	summaryService "github.com/jwalitptl/patient-notes-api/internal/service/summary"
	"github.com/jwalitptl/patient-notes-api/pkg/logger"
)

func main() {
	logger.Setup(nil)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	patientRepo := postgres.NewPatientRepository(db)
	noteRepo := postgres.NewNoteRepository(db)

	// Initialize the text-generation provider
	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// Initialize services
	patientSvc := patientService.NewService(patientRepo)
	noteSvc := noteService.NewService(noteRepo, patientRepo)
	llmSvc := llm.NewService(provider)
	summarySvc := summaryService.NewService(patientSvc, noteSvc, llmSvc)

	// Initialize handlers
	h := handler.NewHandler(db)
	patientH := patientHandler.NewHandler(patientSvc)
	noteH := noteHandler.NewHandler(noteSvc, cfg.Upload)
	summaryH := summaryHandler.NewHandler(summarySvc)

	// Setup router
	routerCfg := router.DefaultConfig()
	routerCfg.Timeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	routerCfg.MaxBodySize = cfg.Upload.MaxSize
	r := router.NewRouter(h, routerCfg, patientH, noteH, summaryH)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
