package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/waseet/event-social/internal/config"
)

// migrate applies schema migrations against the MySQL database configured
// through the same DB_* environment variables the server uses.
//
//	migrate up          apply all pending migrations
//	migrate down [n]    roll back n migrations (default 1)
//	migrate version     print the current version and dirty flag
//	migrate force <v>   set the version without running migrations

var logger zerolog.Logger

func main() {
	_ = godotenv.Load()
	logger = config.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	dbURL := fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s",
		requireEnv("DB_USER"), os.Getenv("DB_PASS"),
		requireEnv("DB_HOST"), requireEnv("DB_PORT"), requireEnv("DB_NAME"))

	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "./migrations"
	}

	m, err := migrate.New("file://"+path, dbURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration init failed")
	}
	defer m.Close()

	switch cmd := args[0]; cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("up failed")
		}
		logger.Info().Msg("migrations: up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				logger.Fatal().Str("arg", args[1]).Msg("down: invalid steps argument")
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("down failed")
		}
		logger.Info().Int("steps", steps).Msg("migrations: down completed")

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal().Err(err).Msg("version failed")
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			logger.Fatal().Msg("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			logger.Fatal().Str("arg", args[1]).Msg("force: invalid version")
		}
		if err := m.Force(v); err != nil {
			logger.Fatal().Err(err).Msg("force failed")
		}
		logger.Info().Int("version", v).Msg("migrations: version forced")

	default:
		usage()
		os.Exit(1)
	}
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		logger.Fatal().Str("var", key).Msg("missing required env var")
	}
	return v
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate <up|down [n]|version|force <v>>")
}
