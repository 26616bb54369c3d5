// Command books-emulator runs a local stand-in for the accounting
// backend: the same REST surface and response envelope, bearer-token
// auth, and server-side recalculation of every document total. Data
// lives in a single bbolt file.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smallbooks/books-admin/internal/emulator/rest"
	"github.com/smallbooks/books-admin/internal/emulator/store"
	"github.com/smallbooks/books-admin/internal/logger"
)

const (
	defaultPort          = "5000"
	defaultDBPath        = "./data/books.db"
	defaultAdminPassword = "admin123"
)

func main() {
	if err := logger.Setup(logger.Config{Level: "info", Format: "console"}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up logging:", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", dbPath).Msg("failed to initialize store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := rest.Seed(st, adminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed store")
	}

	log.Info().Str("db_path", dbPath).Msg("database initialized")

	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      rest.NewRouter(st),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info().Msg("shutting down server")
		if err := server.Close(); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("addr", addr).Msg("starting accounting backend emulator")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}

	log.Info().Msg("server stopped")
}
