package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/TendTo/MemeBot/src/actions"
	"github.com/TendTo/MemeBot/src/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot and the ops API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.L()
		db, err := openDB(log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		manager, err := actions.StartAll(ctx, db, log)
		if err != nil {
			return err
		}
		log.Info("running", zap.Strings("modules", manager.Modules()))

		<-ctx.Done()
		log.Info("shutting down")
		manager.Stop(context.WithoutCancel(ctx))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
