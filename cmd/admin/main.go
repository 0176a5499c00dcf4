package main

import (
	"context"
	"os"

	"github.com/jiet-alumni/alumni-directory/internal/infrastructure/db/mongo"
	"github.com/jiet-alumni/alumni-directory/internal/pkg/config"
	"github.com/jiet-alumni/alumni-directory/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "alumni-admin", Env: cfg.Env})

	ctx := context.Background()
	store, err := mongo.Connect(ctx, mongo.Config{
		URI:              cfg.Mongo.URI,
		Database:         cfg.Mongo.Database,
		UsersCollection:  cfg.Mongo.UsersCollection,
		AlumniCollection: cfg.Mongo.AlumniCollection,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	cli := commandLine{users: store.Users, out: os.Stdout}
	err = cli.run(os.Args)
	_ = store.Close(ctx)
	if err != nil {
		if err != errHelp {
			log.Error().Err(err).Msg("command failed")
		}
		os.Exit(1)
	}
}
