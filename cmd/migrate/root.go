package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/log"
)

var (
	dsn    string
	cfg    *config.AppConfig
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the session store schema",
	Long: `migrate applies the embedded SQL migrations of the web tier's session
store. The DSN comes from the HOTELHUB config unless --dsn is given.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = log.New(cfg.Environment)
		if dsn == "" {
			dsn = cfg.Postgres.DSN
		}
		if dsn == "" {
			return fmt.Errorf("no postgres dsn configured")
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres DSN (overrides config)")
}
