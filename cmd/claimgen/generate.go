package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/claimgen/internal/claimgen"
	"github.com/gyeh/claimgen/internal/db"
	"github.com/gyeh/claimgen/internal/exitcode"
	"github.com/gyeh/claimgen/internal/logging"
	"github.com/gyeh/claimgen/internal/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the claim document for one charge",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Int64Var(&cfg.ChargeID, "charge-id", 0, "Charge to generate a claim document for (required)")
	f.StringVar(&cfg.OutDir, "out", ".", "Directory the document is written to")
	f.BoolVar(&cfg.InitialsOnly, "initials-only", false, "Render patient and insured names as initials")
	_ = generateCmd.MarkFlagRequired("charge-id")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateGenerate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	ref, err := cfg.LoadReference()
	if err != nil {
		log.Error().Err(err).Msg("reference config invalid")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	src := claimgen.NewPGSource(pool)
	gen := claimgen.New(src, ref, log)

	res, err := gen.Generate(ctx, cfg.ChargeID, claimgen.Options{
		IncludePatientName: !cfg.InitialsOnly,
	})
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		os.Exit(generateExitCode(err))
	}

	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if !res.Success {
		fmt.Printf("Charge %d rejected with %d error(s):\n", cfg.ChargeID, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("  - %s\n", e)
		}
		os.Exit(exitcode.ValidationError)
	}

	path := filepath.Join(cfg.OutDir, res.Artifact.Filename)
	if err := os.WriteFile(path, res.Artifact.Data, 0o644); err != nil {
		log.Error().Err(err).Msg("failed to write document")
		os.Exit(exitcode.RenderError)
	}

	if err := src.RegisterDocument(ctx, &model.DocumentRow{
		DocumentID:   uuid.New(),
		BatchID:      uuid.New(),
		ChargeID:     res.Metadata.ChargeID,
		FileName:     res.Artifact.Filename,
		FileSHA256:   res.Artifact.SHA256,
		SizeBytes:    int64(len(res.Artifact.Data)),
		PatientRef:   res.Metadata.PatientRef,
		ProviderNPI:  res.Metadata.ProviderNPI,
		TotalCharge:  res.Metadata.TotalCharge.StringFixed(2),
		WarningCount: int32(len(res.Warnings)),
		GeneratedAt:  res.Metadata.GeneratedAt,
	}); err != nil {
		log.Error().Err(err).Msg("document written but registration failed")
		os.Exit(exitcode.PartialSuccess)
	}

	fmt.Printf("Generated %s (total %s, %d warning(s))\n",
		path, res.Metadata.TotalCharge.StringFixed(2), len(res.Warnings))
	return nil
}

// generateExitCode maps a Generate failure onto the process exit code. Asking
// for a charge that does not exist is caller error, not a database fault.
func generateExitCode(err error) int {
	if errors.Is(err, claimgen.ErrChargeNotFound) {
		return exitcode.UsageError
	}
	var ge *claimgen.GenerateError
	if errors.As(err, &ge) && ge.Phase == "render" {
		return exitcode.RenderError
	}
	return exitcode.DBConnError
}
