// Package claimgen is the public entry point of the claim engine: it maps an
// upstream charge aggregate onto the standardized claim record, validates and
// scrubs it, and renders the document artifact.
package claimgen

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gyeh/claimgen/internal/mapping"
	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/refdata"
	"github.com/gyeh/claimgen/internal/render"
	"github.com/gyeh/claimgen/internal/scrub"
	"github.com/gyeh/claimgen/internal/validate"
)

// GenerateError wraps an unexpected fault with the phase where it occurred
// and the charge it concerned. Expected validation failures are never
// errors; they are reported through Result.
type GenerateError struct {
	Phase    string
	ChargeID int64
	Err      error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("%s (charge %d): %s", e.Phase, e.ChargeID, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// Options controls one generation request.
type Options struct {
	// IncludePatientName false renders initials instead of full names in
	// both patient-name and insured-name fields.
	IncludePatientName bool
}

// Metadata describes a successfully generated document.
type Metadata struct {
	ChargeID    int64
	PatientRef  string // full name or initials, matching the privacy option
	ProviderNPI string
	TotalCharge decimal.Decimal
	GeneratedAt time.Time
}

// Result is the discriminated outcome of one generation request. Warnings
// are always carried, on success and failure alike; they are never silently
// dropped.
type Result struct {
	Success  bool
	Artifact *render.Artifact
	Metadata Metadata
	Errors   []string
	Warnings []string
}

// ChargeSource resolves a charge aggregate from the upstream persistence
// collaborator. Implementations must return the aggregate fully resolved;
// the engine has no other suspension points.
type ChargeSource interface {
	FetchAggregate(ctx context.Context, chargeID int64) (*model.ChargeAggregate, error)
}

// Generator runs the mapping → validation → scrub → render sequence. It is
// stateless per call apart from the immutable reference data, so one
// Generator may serve concurrent requests without coordination.
type Generator struct {
	src       ChargeSource
	ref       *refdata.Reference
	validator *validate.Validator
	scrubber  *scrub.Engine
	log       zerolog.Logger

	// now is replaceable in tests for deterministic filenames.
	now func() time.Time
}

// New returns a Generator bound to the given source and reference data.
func New(src ChargeSource, ref *refdata.Reference, log zerolog.Logger) *Generator {
	return &Generator{
		src:       src,
		ref:       ref,
		validator: validate.New(ref),
		scrubber:  scrub.New(ref),
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate produces the claim document for one charge. Validation failures
// and non-exportable charges come back as an unsuccessful Result; only
// unexpected faults (fetch failure, render failure) return an error.
func (g *Generator) Generate(ctx context.Context, chargeID int64, opts Options) (*Result, error) {
	agg, err := g.src.FetchAggregate(ctx, chargeID)
	if err != nil {
		g.log.Error().Err(err).Int64("charge_id", chargeID).Msg("charge fetch failed")
		return nil, &GenerateError{Phase: "fetch", ChargeID: chargeID, Err: err}
	}
	return g.FromAggregate(agg, opts)
}

// FromAggregate runs the engine on an already-resolved aggregate, as used by
// batch mode where charges arrive from a Parquet export instead of the
// database.
func (g *Generator) FromAggregate(agg *model.ChargeAggregate, opts Options) (*Result, error) {
	chargeID := agg.Charge.ID

	// Precondition: pre-submission charges are rejected before mapping begins.
	if !agg.Charge.ExportableStatus() {
		status := agg.Charge.Status
		if status == "" {
			status = "unknown"
		}
		return &Result{
			Success: false,
			Errors:  []string{fmt.Sprintf("charge %d is in %s status and cannot be exported", chargeID, status)},
		}, nil
	}

	rec := mapping.ToClaimRecord(agg, mapping.Options{
		IncludePatientName:    opts.IncludePatientName,
		DefaultPlaceOfService: g.ref.DefaultPlaceOfService,
	})

	vres := g.validator.Record(rec)
	if !vres.OK() {
		g.log.Debug().
			Int64("charge_id", chargeID).
			Int("errors", len(vres.Errors)).
			Msg("claim rejected by structural validation")
		return &Result{
			Success:  false,
			Errors:   vres.Errors,
			Warnings: vres.Warnings,
		}, nil
	}

	warnings := append(vres.Warnings, g.scrubber.Record(rec)...)

	generatedAt := g.now()
	artifact, renderWarnings, err := render.Record(rec, chargeID, generatedAt)
	if err != nil {
		g.log.Error().Err(err).Int64("charge_id", chargeID).Msg("document rendering failed")
		return nil, &GenerateError{Phase: "render", ChargeID: chargeID, Err: err}
	}
	warnings = append(warnings, renderWarnings...)

	g.log.Info().
		Int64("charge_id", chargeID).
		Str("file", artifact.Filename).
		Int("warnings", len(warnings)).
		Msg("claim document generated")

	return &Result{
		Success:  true,
		Artifact: artifact,
		Metadata: Metadata{
			ChargeID:    chargeID,
			PatientRef:  rec.PatientName,
			ProviderNPI: rec.RenderingProvider.NPI,
			TotalCharge: rec.TotalCharge,
			GeneratedAt: generatedAt,
		},
		Warnings: warnings,
	}, nil
}
