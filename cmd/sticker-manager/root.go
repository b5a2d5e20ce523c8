package main

import (
	"context"
	"fmt"

	"sticker-manager/internal/config"
	"sticker-manager/internal/events"
	"sticker-manager/internal/logger"
	"sticker-manager/internal/services"
	"sticker-manager/internal/storage"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	dbPath   string
	logLevel string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sticker-manager",
		Short: "Track sticker album collections",
		Long: `sticker-manager keeps track of sticker albums: which stickers are collected,
which are still missing and how many duplicates are available to swap.

Without a subcommand the desktop window is opened.`,
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database file (overrides STICKER_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides STICKER_LOG_LEVEL)")

	rootCmd.AddCommand(collectionsCmd(opts))
	rootCmd.AddCommand(cardsCmd(opts))
	rootCmd.AddCommand(exportCmd(opts))

	return rootCmd
}

// loadConfig reads the environment and applies flag overrides
func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// album bundles everything a command needs to work on the database
type album struct {
	log     logger.Logger
	store   *storage.Store
	bus     *events.Bus
	service *services.AlbumService
}

func openAlbum(ctx context.Context, cfg config.Config) (*album, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.LogFormat, level)

	store, err := storage.Open(ctx, cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open album: %w", err)
	}

	bus := events.NewBus(64, log)
	subscribeAuditLog(bus, log)

	return &album{
		log:     log,
		store:   store,
		bus:     bus,
		service: services.NewAlbumService(store, bus, log, cfg.MaxCollectionSize),
	}, nil
}

// Close drains pending events before the database goes away
func (a *album) Close() {
	a.bus.Shutdown()
	if err := a.store.Close(); err != nil {
		a.log.Error("Album", err, map[string]interface{}{"action": "close store"})
	}
}

func subscribeAuditLog(bus *events.Bus, log logger.Logger) {
	handler := events.HandlerFunc{
		ID: "audit-log",
		Fn: func(event events.Event) {
			log.Debug("Events", event.Type, event.Data)
		},
	}
	for _, eventType := range []string{
		events.CollectionAdded,
		events.CollectionDeleted,
		events.CardAdded,
		events.CardUpdated,
	} {
		bus.Subscribe(eventType, handler)
	}
}
