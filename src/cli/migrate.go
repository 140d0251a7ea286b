package cli

import (
	"errors"

	"finpal-server/src/config"
	"finpal-server/src/db/migrations"
	"finpal-server/src/logger"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Store != config.StorePostgres {
				return errors.New("migrate requires STORE=postgres")
			}
			conn, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := migrations.Apply(cmd.Context(), conn); err != nil {
				return err
			}
			logger.Get().Info("migrations complete")
			return nil
		},
	}
}
