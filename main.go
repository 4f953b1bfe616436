package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rsheyd/girlfriend-mode/internal/httpserver"
	"github.com/rsheyd/girlfriend-mode/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	// Games live in the synchronized store; sqlite makes them durable,
	// memory keeps them ephemeral (dev).
	var st store.Store
	switch backend := getEnv("GAMES_BACKEND", "sqlite"); backend {
	case "memory":
		st = store.NewMemoryStore()
	case "sqlite":
		st = store.NewSQLiteStore(db)
	default:
		log.Fatal().Str("backend", backend).Msg("unknown GAMES_BACKEND")
	}

	srv := httpserver.New(st, db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting girlfriend-mode server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
