package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nrfta/videohub/models"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := models.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info().Msg("schema up to date")
			return nil
		},
	}
}
