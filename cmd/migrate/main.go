// cmd/migrate applies the embedded SQL schema and optionally seeds a librarian account.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/pkg/logger"
)

func main() {
	seedLibrarian := flag.Bool("seed-librarian", false, "create the librarian account from LIBRARIAN_USERNAME/LIBRARIAN_PASSWORD")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(config.GetEnv("APP_ENV", "development"))

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database config")
	}

	db, err := sqlx.Open("postgres", dbConfig.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database connection")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		fatal(err, "Failed to ping database")
	}

	version, err := applyMigrations(dbConfig.DSN())
	if err != nil {
		fatal(err, "Migration failed")
	}
	log.Info().Uint("version", version).Msg("Migrations up to date")

	if *seedLibrarian {
		seed := librarianSeed{
			Username: os.Getenv("LIBRARIAN_USERNAME"),
			FullName: config.GetEnv("LIBRARIAN_FULL_NAME", "Librarian"),
			Email:    os.Getenv("LIBRARIAN_EMAIL"),
			Password: os.Getenv("LIBRARIAN_PASSWORD"),
		}
		created, err := seedLibrarianAccount(ctx, db, seed)
		if err != nil {
			fatal(err, "Failed to seed librarian")
		}
		log.Info().Str("username", seed.Username).Bool("created", created).Msg("Librarian seed done")
	}
}

// fatal logs postgres error details when available
func fatal(err error, msg string) {
	event := log.Fatal().Err(err)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		event = event.
			Str("pg_code", string(pqErr.Code)).
			Str("pg_detail", pqErr.Detail).
			Str("pg_constraint", pqErr.Constraint)
	}

	event.Msg(msg)
}
