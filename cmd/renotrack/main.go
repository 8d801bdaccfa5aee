package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"renotrack/internal/archive"
	"renotrack/internal/blobstore/local"
	"renotrack/internal/config"
	"renotrack/internal/db"
	"renotrack/internal/logging"
	"renotrack/internal/naming"
	"renotrack/internal/service"
	"renotrack/internal/store"
	"renotrack/internal/web"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		logger.Error("failed to create data directory", "dir", cfg.DataDir, "error", err)
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	blobs, err := local.NewLocalBlobStore(cfg.UploadsDir)
	if err != nil {
		logger.Error("failed to initialize blob store", "error", err)
		return
	}

	names := naming.Default()
	if cfg.NamesFile != "" {
		names, err = naming.LoadFile(cfg.NamesFile)
		if err != nil {
			logger.Error("failed to load names file", "path", cfg.NamesFile, "error", err)
			return
		}
	}

	records := store.NewRecordStore(database)
	photos := store.NewPhotoStore(database)
	exporter := archive.NewExporter(photos, blobs, names, logger)
	svc := service.NewProgressService(records, photos, blobs, exporter, logger)
	server := web.NewServer(svc, blobs, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
