package main

import (
	"fmt"

	"github.com/TendTo/MemeBot/src/data"
	"github.com/TendTo/MemeBot/src/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	version = "dev"
	envFile string
)

var rootCmd = &cobra.Command{
	Use:     "memebot",
	Short:   "Crowd-moderated post channel bot",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal outside development.
		_ = godotenv.Load(envFile)
		_, err := logging.Init()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file loaded before configuration")
}

// openDB connects to the database named by DATABASE_DSN.
func openDB(log *zap.Logger) (*gorm.DB, error) {
	dsn, err := data.GetDSN()
	if err != nil {
		return nil, err
	}
	db, err := data.Connect(dsn, log)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return db, nil
}
