package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/lms-service/internal/config"
	"github.com/RubachokBoss/lms-service/internal/delivery/httpd"
	"github.com/RubachokBoss/lms-service/internal/middleware"
	"github.com/RubachokBoss/lms-service/internal/repository"
	"github.com/RubachokBoss/lms-service/internal/service"
	"github.com/RubachokBoss/lms-service/internal/storage"
	"github.com/RubachokBoss/lms-service/pkg/hash"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	hasher, err := hash.NewPasswordHasher(hash.Algorithm(cfg.Auth.PasswordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	provider, err := storage.NewProvider(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage provider: %w", err)
	}
	files := storage.NewFileStore(provider, cfg.Storage.PublicPrefix, log)

	// Repositories
	userRepo := repository.NewUserRepository(db, log)
	courseRepo := repository.NewCourseRepository(db, log)
	enrollmentRepo := repository.NewEnrollmentRepository(db, log)
	materialRepo := repository.NewMaterialRepository(db, log)
	announcementRepo := repository.NewAnnouncementRepository(db, log)
	assignmentRepo := repository.NewAssignmentRepository(db, log)
	submissionRepo := repository.NewSubmissionRepository(db, log)

	// Services
	userService := service.NewUserService(userRepo, hasher, files, log)
	courseService := service.NewCourseService(courseRepo, enrollmentRepo, log)
	materialService := service.NewMaterialService(materialRepo, courseRepo, files, log)
	announcementService := service.NewAnnouncementService(announcementRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, courseRepo, files, log)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, files, log)

	handler := httpd.NewHandler(
		userService,
		courseService,
		materialService,
		announcementService,
		assignmentService,
		submissionService,
		files,
		repository.NewPostgresRepository(db, log),
		httpd.Config{
			UploadsPrefix: cfg.Storage.PublicPrefix,
			MaxUploadSize: cfg.Server.MaxUploadSize,
		},
		log,
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	if cfg.Server.WriteTimeout > 0 {
		router.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))
	}
	router.Use(middleware.NewCORS(cfg.CORS))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Info().
		Str("storage", provider.Name()).
		Str("password_hash", cfg.Auth.PasswordHash).
		Msg("Application wired")

	return &App{
		server: server,
		logger: log,
		config: cfg,
		db:     db,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting LMS service on %s", a.config.Server.Address)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down LMS service...")

	err := a.server.Shutdown(ctx)

	if a.db != nil {
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Error().Err(closeErr).Msg("Failed to close database connection")
		}
	}

	return err
}
