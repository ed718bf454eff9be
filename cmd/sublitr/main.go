package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/sublitr/sublitr/auth"
	"github.com/sublitr/sublitr/config"
	"github.com/sublitr/sublitr/repository"
	"github.com/sublitr/sublitr/server"
	"github.com/sublitr/sublitr/storage"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	slogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger := auth.NewSlogLogger(slogger)

	if err := run(logger); err != nil {
		logger.Error("fatal: %v", err)
		os.Exit(1)
	}
}

func run(logger auth.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := repository.CreateSchema(ctx, db); err != nil {
		return err
	}

	repos := repository.New(db)

	tokens := auth.NewTokenService([]byte(cfg.JWT.Secret), cfg.JWT.Expiry, "sublitr", logger)
	provider := auth.NewUserProvider(repos.Users()).WithLogger(logger)
	auther := auth.NewAuthenticator(provider, tokens).WithLogger(logger)

	blobs, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Auther:       auther,
		Repos:        repos,
		Blobs:        blobs,
		Logger:       logger,
		ClientOrigin: cfg.ClientOrigin,
	})

	return srv.Listen(cfg.Addr())
}
