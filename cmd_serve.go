package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/aamoria/wellness-api/auth"
	"github.com/aamoria/wellness-api/config"
	"github.com/aamoria/wellness-api/handlers"
	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/middleware"
	"github.com/aamoria/wellness-api/repos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func authSettings(env config.Environment) auth.Settings {
	return auth.Settings{
		SecretKey: env.JWTSecretKey,
		Issuer:    env.JWTIssuer,
		Audience:  env.JWTAudience,
		TTL:       env.AdminTokenTTL,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	env, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	if err := env.RequireJWTSecret(); err != nil {
		return err
	}

	db, err := openDB(env, log)
	if err != nil {
		return err
	}

	products := repos.NewProductRepo(db, log)
	svc := journey.NewService(repos.NewJourneyRepo(db, log), products, log)
	h := handlers.New(svc, repos.NewQuizRepo(db, log), env.QuizWeighting, log)

	ensureValidToken, err := middleware.EnsureValidToken(authSettings(env), log)
	if err != nil {
		return fmt.Errorf("auth middleware: %w", err)
	}
	mux := http.NewServeMux()
	h.Register(mux, middleware.RequireAdmin(log))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLog(log)(ensureValidToken(mux)))

	srv := &http.Server{
		Addr:              "0.0.0.0:" + env.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
