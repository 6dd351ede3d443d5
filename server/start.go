package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"tasknest-service/auth"
	"tasknest-service/config"
	"tasknest-service/database"
	"tasknest-service/store"
	"tasknest-service/weather"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// StartServer wires every component from cfg and serves until SIGINT or
// SIGTERM. Startup failures exit the process with status 1.
func StartServer(cfg *config.Config, log *zap.Logger) {
	log.Info("Starting TaskNest service...", zap.String("env", cfg.Env))

	// migrations log through the go-utils global logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	dbConn, err := database.InitializeDatabase(cfg.Database, log)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		os.Exit(1)
	}

	router := NewRouter(Dependencies{
		Users:   store.NewUserStore(dbConn),
		Tasks:   store.NewTaskStore(dbConn),
		Hasher:  auth.NewPasswordHasher(),
		Tokens:  auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer),
		Weather: weather.NewClient(cfg.Weather),
		Logger:  log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", zap.Error(err))
			os.Exit(1)
		}
	}()

	log.Info("TaskNest service started on port " + cfg.Port)
	log.Info("Health check: GET /health")
	log.Info("API endpoints: POST /, GET/POST/PUT/DELETE /taskNest, POST /weatherMe, GET /api/admin/{users,tasks}")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		shutdownOperations(srv, dbConn, log),
	)

	exitCode := <-wait
	log.Info("TaskNest service stopped", zap.Int("exit_code", exitCode))
	log.Sync()
	os.Exit(exitCode)
}

// shutdownOperations drains srv and only then closes db. gfshutdown runs
// separate operations concurrently, so both steps live in one operation.
func shutdownOperations(srv *http.Server, db io.Closer, log *zap.Logger) map[string]gfshutdown.Operation {
	return map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			log.Info("Shutting down HTTP server")
			shutdownErr := srv.Shutdown(ctx)
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", zap.Error(err))
			}
			return shutdownErr
		},
	}
}
