package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(infra.GetContext(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, logLevel string

	rootCmd := &cobra.Command{
		Use:          "chartview",
		Short:        "Terminal tools for the SPY chart",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := logger.Setup(logLevel, false)
			cmd.SetContext(logger.WithLogger(cmd.Context(), log))
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config/.env", "dotenv file with settings")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(newViewCmd(&configPath))
	rootCmd.AddCommand(newSeedCmd(&configPath))

	return rootCmd
}
