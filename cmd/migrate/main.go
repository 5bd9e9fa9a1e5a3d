package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/tripshare/backend/internal/infrastructure/config"
	"github.com/tripshare/backend/internal/infrastructure/logger"
	"github.com/tripshare/backend/internal/infrastructure/migration"
)

func main() {
	var (
		migrationsPath = flag.String("path", "migrations", "path to migration files")
		databaseURL    = flag.String("database", "", "database URL (defaults to config)")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	url := *databaseURL
	if url == "" {
		url = cfg.Database.DSN()
	}

	migrator, err := migration.NewFromURL(url, *migrationsPath, log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer func() {
		_ = migrator.Close()
	}()

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("migration up failed", zap.Error(err))
		}
		log.Info("migrations applied")

	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal("migration down failed", zap.Error(err))
		}
		log.Info("last migration rolled back")

	case "step":
		if flag.NArg() < 2 {
			log.Fatal("step requires a count, e.g. 'step -1'")
		}
		n, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("invalid step count", zap.String("arg", flag.Arg(1)))
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("migration step failed", zap.Error(err))
		}
		log.Info("migration steps applied", zap.Int("steps", n))

	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("failed to read migration version", zap.Error(err))
		}
		log.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version, e.g. 'force 3'")
		}
		version, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("invalid version", zap.String("arg", flag.Arg(1)))
		}
		if err := migrator.Force(version); err != nil {
			log.Fatal("migration force failed", zap.Error(err))
		}
		log.Info("migration version forced", zap.Int("version", version))

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command>

Commands:
  up             apply all pending migrations
  down           roll back the last migration
  step <n>       apply n migrations (negative rolls back)
  version        print the current migration version
  force <v>      force the version without running migrations

Flags:
`)
	flag.PrintDefaults()
}
