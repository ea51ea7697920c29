package main

import (
	"github.com/TendTo/MemeBot/src/data"
	"github.com/TendTo/MemeBot/src/logging"
	"github.com/spf13/cobra"
)

var resetSchema bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the moderation tables.

With --reset every moderation table is dropped first: pending submissions,
votes, published posts, bans and credit preferences. Settings are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.L()
		db, err := openDB(log)
		if err != nil {
			return err
		}
		if resetSchema {
			log.Warn("dropping moderation tables")
			return data.Reset(db)
		}
		if err := data.Migrate(db); err != nil {
			return err
		}
		log.Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&resetSchema, "reset", false, "drop the moderation tables before migrating")
}
