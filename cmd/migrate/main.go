package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"gift_ledger/internal/application"
	"gift_ledger/internal/config"
	"gift_ledger/migrations"
	"gift_ledger/pkg/logx"
)

func main() {
	var command string

	flag.StringVar(&command, "cmd", "up", "migration command: up, down, version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := application.NewLogger(cfg.App)

	if err := run(log, cfg.Postgres.DSN, command); err != nil {
		log.Error("migrate", slog.String("command", command), logx.Error(err))
		os.Exit(1)
	}
}

func run(log *slog.Logger, dsn, command string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("migrate.NewWithSourceInstance: %w", err)
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("m.Version: %w", err)
		}

		log.Info("migration version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

		return nil
	default:
		return errors.New("unknown command " + command)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", command, err)
	}

	log.Info("migration done", slog.String("command", command))

	return nil
}
