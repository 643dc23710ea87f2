package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimgen/internal/claimgen"
	"github.com/gyeh/claimgen/internal/exitcode"
	"github.com/gyeh/claimgen/internal/logging"
	"github.com/gyeh/claimgen/internal/normalize"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and scrub report (no documents written)",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet charge export (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateFile(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	ref, err := cfg.LoadReference()
	if err != nil {
		log.Error().Err(err).Msg("reference config invalid")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}
	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	gen := claimgen.New(nil, ref, log)
	summary, issues, err := gen.RunBatch(ctx, cfg.FilePath, nil, claimgen.BatchOptions{DryRun: true})
	if err != nil {
		log.Error().Err(err).Msg("plan failed")
		os.Exit(exitcode.ValidationError)
	}

	fmt.Println("=== claimgen plan ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Total rows: %d\n", summary.RowsRead)
	fmt.Printf("Would generate: %d\n", summary.Generated)
	fmt.Printf("Would reject:   %d\n", summary.Rejected)
	fmt.Printf("Warnings:       %d\n", summary.WarningsTotal)

	if len(issues) > 0 {
		fmt.Println()
		for _, issue := range issues {
			for _, e := range issue.Errors {
				fmt.Printf("charge %d: error: %s\n", issue.ChargeID, e)
			}
			for _, w := range issue.Warnings {
				fmt.Printf("charge %d: warning: %s\n", issue.ChargeID, w)
			}
		}
	}

	if summary.Rejected > 0 {
		os.Exit(exitcode.ValidationError)
	}
	fmt.Println("\nAll rows pass structural validation.")
	return nil
}
