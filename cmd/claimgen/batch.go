package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimgen/internal/claimgen"
	"github.com/gyeh/claimgen/internal/db"
	"github.com/gyeh/claimgen/internal/exitcode"
	"github.com/gyeh/claimgen/internal/logging"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate claim documents for a Parquet charge export",
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet charge export (required)")
	f.StringVar(&cfg.OutDir, "out", "claims", "Directory documents are written to")
	f.BoolVar(&cfg.InitialsOnly, "initials-only", false, "Render patient and insured names as initials")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
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

	// Registration is optional in batch mode: without a DSN the documents
	// are written to disk only.
	var registry claimgen.DocumentRegistry
	if cfg.DSN != "" {
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		registry = claimgen.NewPGSource(pool)
	}

	gen := claimgen.New(nil, ref, log)
	summary, issues, err := gen.RunBatch(ctx, cfg.FilePath, registry, claimgen.BatchOptions{
		OutDir:             cfg.OutDir,
		IncludePatientName: !cfg.InitialsOnly,
	})
	if err != nil {
		log.Error().Err(err).Msg("batch run failed")
		os.Exit(exitcode.RenderError)
	}

	for _, issue := range issues {
		for _, e := range issue.Errors {
			fmt.Printf("charge %d: error: %s\n", issue.ChargeID, e)
		}
		for _, w := range issue.Warnings {
			fmt.Printf("charge %d: warning: %s\n", issue.ChargeID, w)
		}
	}

	fmt.Printf("Batch %s: %d rows, %d generated, %d rejected, %d warnings (%.1fs)\n",
		summary.BatchID, summary.RowsRead, summary.Generated, summary.Rejected,
		summary.WarningsTotal, summary.DurationTotal.Seconds())

	if summary.Rejected > 0 && summary.Generated > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	if summary.Rejected > 0 {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}
