package claimgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/claimgen/internal/db"
	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/normalize"
	embedsql "github.com/gyeh/claimgen/internal/sql"
)

// ErrChargeNotFound is returned when the requested charge does not exist.
var ErrChargeNotFound = errors.New("charge not found")

// PGSource resolves charge aggregates from the billing schema and registers
// generated documents in the claims schema.
type PGSource struct {
	pool *pgxpool.Pool
}

// NewPGSource wraps an existing connection pool.
func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{pool: pool}
}

// FetchAggregate loads the charge, its patient and provider, and any
// companion charges sharing the same claim group.
func (s *PGSource) FetchAggregate(ctx context.Context, chargeID int64) (*model.ChargeAggregate, error) {
	row := s.pool.QueryRow(ctx, embedsql.GetCharge, chargeID)
	charge, patientID, providerID, groupID, err := scanCharge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrChargeNotFound, chargeID)
		}
		return nil, fmt.Errorf("load charge %d: %w", chargeID, err)
	}

	agg := &model.ChargeAggregate{Charge: *charge}

	if err := s.pool.QueryRow(ctx, embedsql.GetPatient, patientID).Scan(
		&agg.Patient.ID,
		&agg.Patient.LastName,
		&agg.Patient.FirstName,
		&agg.Patient.DateOfBirth,
		&agg.Patient.Address.Street,
		&agg.Patient.Address.City,
		&agg.Patient.Address.State,
		&agg.Patient.Address.Zip,
		&agg.Patient.Phone,
		&agg.Patient.InsuranceID,
	); err != nil {
		return nil, fmt.Errorf("load patient %d: %w", patientID, err)
	}

	if err := s.pool.QueryRow(ctx, embedsql.GetProvider, providerID).Scan(
		&agg.Provider.ID,
		&agg.Provider.LastName,
		&agg.Provider.FirstName,
		&agg.Provider.NPI,
		&agg.Provider.BillingNPI,
		&agg.Provider.TaxID,
		&agg.Provider.Address.Street,
		&agg.Provider.Address.City,
		&agg.Provider.Address.State,
		&agg.Provider.Address.Zip,
		&agg.Provider.Phone,
	); err != nil {
		return nil, fmt.Errorf("load provider %d: %w", providerID, err)
	}

	if groupID != "" {
		rows, err := s.pool.Query(ctx, embedsql.GetGroupCharges, groupID, chargeID)
		if err != nil {
			return nil, fmt.Errorf("load group charges for %s: %w", groupID, err)
		}
		defer rows.Close()
		for rows.Next() {
			gc, _, _, _, err := scanCharge(rows)
			if err != nil {
				return nil, fmt.Errorf("scan group charge: %w", err)
			}
			agg.GroupCharges = append(agg.GroupCharges, *gc)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate group charges: %w", err)
		}
	}

	return agg, nil
}

// RegisterDocument records one generated document in the claims registry.
func (s *PGSource) RegisterDocument(ctx context.Context, doc *model.DocumentRow) error {
	_, err := s.pool.Exec(ctx, embedsql.RegisterDocument, doc.CopyValues()...)
	if err != nil {
		return fmt.Errorf("register document for charge %d: %w", doc.ChargeID, err)
	}
	return nil
}

// RegisterDocuments bulk-registers documents from a channel via COPY,
// returning the number of rows written. The caller closes the channel when
// rendering finishes.
func (s *PGSource) RegisterDocuments(ctx context.Context, docs <-chan *model.DocumentRow) (int64, error) {
	n, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{"claims", "claim_documents"},
		model.DocumentColumns(),
		db.NewDocumentSource(docs),
	)
	if err != nil {
		return n, fmt.Errorf("copy claim documents: %w", err)
	}
	return n, nil
}

// scanCharge reads one billing.charges row in get_charge.sql column order.
func scanCharge(row pgx.Row) (charge *model.Charge, patientID, providerID int64, groupID string, err error) {
	var (
		c            model.Charge
		dateTo       *time.Time
		chargeAmt    string
		totalCharge  string
		amountPaid   string
		claimGroupID *string
	)
	err = row.Scan(
		&c.ID,
		&c.Status,
		&c.ServiceDateFrom,
		&dateTo,
		&c.PlaceOfService,
		&c.ProcedureCode,
		&c.Modifiers,
		&c.DiagnosisCodes,
		&c.DiagnosisPtrs,
		&c.Units,
		&chargeAmt,
		&totalCharge,
		&amountPaid,
		&c.RenderingNPI,
		&c.BillingNPI,
		&c.BillingTaxID,
		&c.AcceptAssignment,
		&c.SignatureOnFile,
		&c.SignatureDate,
		&c.PriorAuthNumber,
		&c.InsuredRelationship,
		&c.EmployerName,
		&c.SecondaryInsured,
		&patientID,
		&providerID,
		&claimGroupID,
	)
	if err != nil {
		return nil, 0, 0, "", err
	}

	if dateTo != nil {
		c.ServiceDateTo = *dateTo
	} else {
		c.ServiceDateTo = c.ServiceDateFrom
	}
	if c.ChargeAmount, err = normalize.ParseAmount(chargeAmt); err != nil {
		return nil, 0, 0, "", err
	}
	if c.TotalCharge, err = normalize.ParseAmount(totalCharge); err != nil {
		return nil, 0, 0, "", err
	}
	if c.AmountPaid, err = normalize.ParseAmount(amountPaid); err != nil {
		return nil, 0, 0, "", err
	}
	if claimGroupID != nil {
		groupID = *claimGroupID
	}
	return &c, patientID, providerID, groupID, nil
}
