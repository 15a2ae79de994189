package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog"

	"qrtracker/internal/config"
	"qrtracker/internal/logger"
	"qrtracker/internal/repository"
	"qrtracker/internal/service"
	"qrtracker/internal/storage"
)

func main() {
	cfg := config.NewConfig()

	log := logger.NewLogger(cfg.LogLevel)

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	tracker := service.NewTracker(
		repository.NewQRCodes(store),
		repository.NewFolders(store),
		store,
		log,
	)

	if err := run(ctx, flag.Arg(0), tracker, log); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(ctx context.Context, command string, tracker *service.Tracker, log zerolog.Logger) error {
	switch command {
	case "", "init":
		log.Info().Msg("schema ready")
		return nil
	case "list":
		return listQRCodes(ctx, tracker)
	case "folders":
		return listFolders(ctx, tracker)
	case "dump":
		if err := listFolders(ctx, tracker); err != nil {
			return err
		}
		return listQRCodes(ctx, tracker)
	default:
		return fmt.Errorf("unknown command %q (want init, list, folders or dump)", command)
	}
}

func listQRCodes(ctx context.Context, tracker *service.Tracker) error {
	codes, err := tracker.ListQRCodes(ctx)
	if err != nil {
		return err
	}

	var total int64
	for _, qr := range codes {
		fmt.Printf("%s  %-16s  %-10s  folder=%-12s  scans=%d\n",
			qr.ID, qr.Title, qr.Type, qr.Folder, qr.Scans)
		total += qr.Scans
	}
	fmt.Printf("%d qr codes, %d scans total\n", len(codes), total)
	return nil
}

func listFolders(ctx context.Context, tracker *service.Tracker) error {
	folders, err := tracker.ListFolders(ctx)
	if err != nil {
		return err
	}

	for _, folder := range folders {
		fmt.Printf("%s  %s\n", folder.ID, folder.Name)
	}
	fmt.Printf("%d folders\n", len(folders))
	return nil
}
