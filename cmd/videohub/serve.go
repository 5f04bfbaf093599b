package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nrfta/videohub/commenting"
	"github.com/nrfta/videohub/countcache"
	"github.com/nrfta/videohub/httpapi"
	"github.com/nrfta/videohub/listing"
	"github.com/nrfta/videohub/reacting"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := openDB(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			var counts countcache.Cache = countcache.Noop{}
			if cfg.Redis.Addr != "" {
				redisCache := countcache.NewRedisFromAddr(cfg.Redis.Addr, cfg.Redis.CountTTL)
				defer redisCache.Close()
				if err := redisCache.Ping(ctx); err != nil {
					log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("count cache unreachable, totals are loaded per request until it recovers")
				}
				counts = redisCache
			}

			listings := listing.NewService(
				listing.NewSQLStore(db),
				listing.WithCountCache(counts),
				listing.WithLogger(log.Logger),
				listing.WithMetrics(listing.NewMetrics(prometheus.DefaultRegisterer)),
			)

			router := httpapi.NewRouter(httpapi.RouterDependencies{
				Listing:        listings,
				Comments:       commenting.NewService(db, counts, log.Logger),
				Reactions:      reacting.NewService(db, log.Logger),
				Logger:         log.Logger,
				Metrics:        promhttp.Handler(),
				Ping:           db.PingContext,
				RequestTimeout: cfg.App.RequestTimeout,
			})

			srv := &http.Server{
				Addr:         ":" + cfg.App.Port,
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				log.Info().Msgf("videohub API listening on :%s", cfg.App.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
}
