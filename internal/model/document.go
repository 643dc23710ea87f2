package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRow is the registry record for one generated claim document,
// COPY-ready for claims.claim_documents.
type DocumentRow struct {
	DocumentID   uuid.UUID
	BatchID      uuid.UUID
	ChargeID     int64
	FileName     string
	FileSHA256   string
	SizeBytes    int64
	PatientRef   string
	ProviderNPI  string
	TotalCharge  string // numeric as text, two decimal places
	WarningCount int32
	GeneratedAt  time.Time
}

// DocumentColumns returns the claim_documents column names in COPY order.
func DocumentColumns() []string {
	return []string{
		"document_id",
		"batch_id",
		"charge_id",
		"file_name",
		"file_sha256",
		"size_bytes",
		"patient_ref",
		"provider_npi",
		"total_charge",
		"warning_count",
		"generated_at",
	}
}

// CopyValues returns the row values in the same order as DocumentColumns(),
// suitable for pgx CopyFromSource.
func (r *DocumentRow) CopyValues() []any {
	return []any{
		r.DocumentID,
		r.BatchID,
		r.ChargeID,
		r.FileName,
		r.FileSHA256,
		r.SizeBytes,
		r.PatientRef,
		r.ProviderNPI,
		r.TotalCharge,
		r.WarningCount,
		r.GeneratedAt,
	}
}
