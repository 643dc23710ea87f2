package claimgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/normalize"
	"github.com/gyeh/claimgen/internal/parquetread"
)

const batchChunkSize = 256

// BatchOptions controls a batch run over a Parquet charge export.
type BatchOptions struct {
	OutDir             string
	IncludePatientName bool

	// DryRun validates and scrubs every row but writes no artifacts and
	// registers nothing; used by the plan command.
	DryRun bool
}

// RowIssue reports why one export row produced no document, or what a
// generated document was flagged with.
type RowIssue struct {
	ChargeID int64
	Errors   []string
	Warnings []string
}

// DocumentRegistry receives registry rows for generated documents. A nil
// registry skips registration (file-only runs).
type DocumentRegistry interface {
	RegisterDocuments(ctx context.Context, docs <-chan *model.DocumentRow) (int64, error)
}

// RunBatch streams a Parquet charge export through the engine, writing one
// document per exportable charge. Per-row failures never abort the run; they
// are collected and counted in the summary.
func (g *Generator) RunBatch(ctx context.Context, filePath string, registry DocumentRegistry, opts BatchOptions) (*model.BatchSummary, []RowIssue, error) {
	start := time.Now()

	reader, err := parquetread.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, nil, fmt.Errorf("charge export %s: %w", filePath, err)
	}

	summary := &model.BatchSummary{
		FilePath: filePath,
		BatchID:  uuid.New().String(),
	}
	batchID := uuid.MustParse(summary.BatchID)

	g.log.Info().
		Str("file", filePath).
		Str("batch_id", summary.BatchID).
		Int64("rows", reader.NumRows()).
		Bool("dry_run", opts.DryRun).
		Msg("starting batch run")

	if !opts.DryRun && opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	// Registration runs concurrently over a channel so rendering is never
	// blocked on the database.
	var (
		docs      chan *model.DocumentRow
		copyDone  chan copyResult
		registers = registry != nil && !opts.DryRun
	)
	if registers {
		docs = make(chan *model.DocumentRow, batchChunkSize)
		copyDone = make(chan copyResult, 1)
		go func() {
			n, err := registry.RegisterDocuments(ctx, docs)
			copyDone <- copyResult{rows: n, err: err}
		}()
	}

	var issues []RowIssue
	rows := make([]model.ChargeExportRow, batchChunkSize)
	readStart := time.Now()
	for {
		n, readErr := reader.Read(rows)
		summary.DurationRead += time.Since(readStart)

		renderStart := time.Now()
		for i := 0; i < n; i++ {
			summary.RowsRead++
			issue, doc, ok := g.runRow(&rows[i], batchID, opts, summary)
			if !ok {
				summary.Rejected++
			} else {
				summary.Generated++
			}
			if issue != nil {
				issues = append(issues, *issue)
			}
			if registers && doc != nil {
				// The send must stay abortable: if the registry writer has
				// already exited, nothing drains docs and a bare send would
				// block forever once the buffer fills.
				select {
				case docs <- doc:
				case res := <-copyDone:
					if res.err == nil {
						res.err = fmt.Errorf("document registry stopped before the batch finished")
					}
					return nil, issues, res.err
				case <-ctx.Done():
					close(docs)
					<-copyDone
					return nil, issues, ctx.Err()
				}
			}
		}
		summary.DurationRender += time.Since(renderStart)

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			if registers {
				close(docs)
				<-copyDone
			}
			return nil, issues, readErr
		}
		readStart = time.Now()
	}

	if registers {
		close(docs)
		res := <-copyDone
		if res.err != nil {
			return nil, issues, res.err
		}
		summary.DocumentsWritten = res.rows
	}

	summary.DurationTotal = time.Since(start)

	g.log.Info().
		Str("batch_id", summary.BatchID).
		Int64("rows", summary.RowsRead).
		Int64("generated", summary.Generated).
		Int64("rejected", summary.Rejected).
		Int64("warnings", summary.WarningsTotal).
		Dur("elapsed", summary.DurationTotal).
		Msg("batch run complete")

	return summary, issues, nil
}

type copyResult struct {
	rows int64
	err  error
}

// runRow processes one export row through rendering. ok reports whether a
// document was (or in dry-run mode, would be) generated; the returned
// DocumentRow, when non-nil, is the registry record the caller sends to the
// COPY writer.
func (g *Generator) runRow(row *model.ChargeExportRow, batchID uuid.UUID, opts BatchOptions, summary *model.BatchSummary) (*RowIssue, *model.DocumentRow, bool) {
	agg, err := normalize.ToAggregate(row)
	if err != nil {
		return &RowIssue{ChargeID: row.ChargeID, Errors: []string{err.Error()}}, nil, false
	}

	res, err := g.FromAggregate(agg, Options{IncludePatientName: opts.IncludePatientName})
	if err != nil {
		return &RowIssue{ChargeID: row.ChargeID, Errors: []string{err.Error()}}, nil, false
	}

	summary.WarningsTotal += int64(len(res.Warnings))
	if !res.Success {
		return &RowIssue{ChargeID: row.ChargeID, Errors: res.Errors, Warnings: res.Warnings}, nil, false
	}

	var issue *RowIssue
	if len(res.Warnings) > 0 {
		issue = &RowIssue{ChargeID: row.ChargeID, Warnings: res.Warnings}
	}
	if opts.DryRun {
		return issue, nil, true
	}

	if opts.OutDir != "" {
		path := filepath.Join(opts.OutDir, res.Artifact.Filename)
		if err := os.WriteFile(path, res.Artifact.Data, 0o644); err != nil {
			return &RowIssue{ChargeID: row.ChargeID, Errors: []string{fmt.Sprintf("write artifact: %s", err)}}, nil, false
		}
	}

	doc := &model.DocumentRow{
		DocumentID:   uuid.New(),
		BatchID:      batchID,
		ChargeID:     res.Metadata.ChargeID,
		FileName:     res.Artifact.Filename,
		FileSHA256:   res.Artifact.SHA256,
		SizeBytes:    int64(len(res.Artifact.Data)),
		PatientRef:   res.Metadata.PatientRef,
		ProviderNPI:  res.Metadata.ProviderNPI,
		TotalCharge:  res.Metadata.TotalCharge.StringFixed(2),
		WarningCount: int32(len(res.Warnings)),
		GeneratedAt:  res.Metadata.GeneratedAt,
	}
	return issue, doc, true
}
