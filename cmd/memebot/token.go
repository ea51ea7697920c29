package main

import (
	"fmt"
	"time"

	"github.com/TendTo/MemeBot/src/api"
	sharedconfig "github.com/TendTo/MemeBot/src/config"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin token for the ops API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Settings live in the database when one is reachable.
		db, _ := openDB(nil)
		cfg := sharedconfig.LoadAPIConfig(db)
		tok, err := api.MintToken([]byte(cfg.JWTSecret), tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "ops", "token subject recorded in audit logs")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
