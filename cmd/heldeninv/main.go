package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/tbruckner/heldeninv/internal/audit"
	"github.com/tbruckner/heldeninv/internal/config"
	"github.com/tbruckner/heldeninv/internal/inventory"
	"github.com/tbruckner/heldeninv/internal/logging"
	"github.com/tbruckner/heldeninv/internal/persistence"
	filestore "github.com/tbruckner/heldeninv/internal/persistence/file"
	sqlitestore "github.com/tbruckner/heldeninv/internal/persistence/sqlite"
	"github.com/tbruckner/heldeninv/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	store, closeStore, err := newStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		return
	}
	defer closeStore()

	trail := audit.New(cfg.AuditFile, logger)

	svc := inventory.NewService(store, trail, logger)
	if err := svc.Load(context.Background()); err != nil {
		logger.Error("failed to load inventory", "error", err)
		return
	}
	defer svc.Close()

	server := web.NewServer(svc, trail, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newStore(cfg *config.Config, logger *slog.Logger) (persistence.Store, func(), error) {
	switch cfg.StorageBackend {
	case "sqlite":
		logger.Info("using sqlite storage backend", "path", cfg.DBPath)
		db, err := sqlitestore.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}
		return sqlitestore.NewStore(db), closeDB, nil
	default:
		logger.Info("using file storage backend", "path", cfg.DataFile)
		store, err := filestore.New(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
