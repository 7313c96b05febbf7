// Command prefix-treed serves prefix lookups over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/prefix-tree/internal/api"
	"github.com/kumarlokesh/prefix-tree/internal/config"
	"github.com/kumarlokesh/prefix-tree/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(status)
}

// run starts the daemon and serves until ctx is cancelled. It returns the
// process exit status.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	d, err := newDaemon(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	d.logger.Info().
		Interface("stats", d.store.Stats()).
		Str("addr", d.server.Addr()).
		Msg("Seeded trie")

	if err := d.serve(ctx); err != nil {
		d.logger.Error().Err(err).Msg("Server failed")
		return 1
	}
	return 0
}

type daemon struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  *api.Store
	server *api.Server
}

// newDaemon parses flags, loads configuration and seeds the store
func newDaemon(args []string, stderr io.Writer) (*daemon, error) {
	fs := flag.NewFlagSet("prefix-treed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := api.NewStore(cfg.Seed.Words...)
	if err != nil {
		return nil, fmt.Errorf("failed to seed trie: %w", err)
	}

	return &daemon{
		cfg:    cfg,
		logger: logger,
		store:  store,
		server: api.NewServer(cfg.Server.Addr(), store, logger, api.WithReadTimeout(cfg.Server.ReadTimeout)),
	}, nil
}

// serve runs the server until ctx is done or the server fails, then shuts it
// down and destroys the trie.
func (d *daemon) serve(ctx context.Context) error {
	defer d.store.Close()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- d.server.Start()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		d.logger.Info().Msg("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := d.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serverErrors; err != nil {
		return err
	}
	d.logger.Info().Msg("Server stopped")
	return nil
}
