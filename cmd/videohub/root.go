package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nrfta/videohub/config"
)

type rootOptions struct {
	EnvFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "videohub",
		Short:         "Video listings API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file read before the environment")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

// setup loads the configuration and sets the global log level.
func setup(opts *rootOptions) (config.Cfg, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return config.Cfg{}, err
	}

	zerolog.SetGlobalLevel(cfg.App.LogLevel)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return cfg, nil
}

// openDB opens the database and waits for it to answer a ping.
func openDB(ctx context.Context, cfg config.DBCfg) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 5 * time.Second

	ping := func() error {
		err := db.PingContext(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("database not ready")
		}
		return err
	}
	if err := backoff.Retry(ping, backoff.WithContext(backoff.WithMaxRetries(policy, cfg.PingRetries), ctx)); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
