package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyeh/claimgen/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "claimgen",
	Short: "Billing charges → standardized insurance claim documents",
	Long:  "Validates billing charges against payer submission rules and renders them as fixed-layout claim form documents.",
}

func init() {
	// A local .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("CLAIMGEN_DB_URL"), "Postgres connection string (or set CLAIMGEN_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.RefConfigPath, "ref-config", "", "YAML file overriding the built-in payer code sets")
}
