// Command musicrec runs the music recommender API server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NuhaYoosuf/MusicRec/internal/catalog"
	"github.com/NuhaYoosuf/MusicRec/internal/config"
	"github.com/NuhaYoosuf/MusicRec/internal/store"
	"github.com/NuhaYoosuf/MusicRec/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return fmt.Errorf("connecting store: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(ctx); err != nil {
			logger.Error("closing store", "err", err)
		}
	}()
	logger.Info("connected to store", "db", cfg.DBName)

	cat := catalog.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	handlers := web.NewHandlers(st.Users(), st.SavedTracks(), cat)
	server := web.NewServer(cfg.Addr, handlers, logger)

	return server.Run()
}
