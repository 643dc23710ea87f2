package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gyeh/claimgen/internal/model"
)

func testAggregate() *model.ChargeAggregate {
	sigDate := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	return &model.ChargeAggregate{
		Charge: model.Charge{
			ID:              1042,
			Status:          model.ChargeStatusReady,
			ServiceDateFrom: time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
			PlaceOfService:  "11",
			ProcedureCode:   "90834",
			Modifiers:       []string{"GT"},
			DiagnosisCodes:  []string{"F32.9"},
			DiagnosisPtrs:   []string{"A"},
			Units:           1,
			ChargeAmount:    decimal.RequireFromString("150.00"),
			TotalCharge:     decimal.RequireFromString("150.00"),
			AmountPaid:      decimal.RequireFromString("25.00"),

			AcceptAssignment:    true,
			SignatureOnFile:     true,
			SignatureDate:       &sigDate,
			InsuredRelationship: "self",
		},
		Patient: model.Patient{
			ID:          7,
			LastName:    "Johnson",
			FirstName:   "Sarah",
			DateOfBirth: time.Date(1985, 3, 12, 0, 0, 0, 0, time.UTC),
			Address:     model.Address{Street: "100 Maple St", City: "Portland", State: "OR", Zip: "97201"},
			Phone:       "503-555-0142",
			InsuranceID: "INS400123",
		},
		Provider: model.Provider{
			ID:        3,
			LastName:  "Reyes",
			FirstName: "Camille",
			NPI:       "1234567893",
			TaxID:     "93-1234567",
			Address:   model.Address{Street: "500 SW Clinic Way", City: "Portland", State: "OR", Zip: "97204"},
			Phone:     "503-555-0100",
		},
	}
}

var defaultOpts = Options{IncludePatientName: true, DefaultPlaceOfService: "11"}

func TestToClaimRecord_Identity(t *testing.T) {
	rec := ToClaimRecord(testAggregate(), defaultOpts)

	if rec.PatientName != "Johnson, Sarah" {
		t.Errorf("PatientName: got %q", rec.PatientName)
	}
	if rec.InsuredName != "Johnson, Sarah" {
		t.Errorf("InsuredName: got %q", rec.InsuredName)
	}
	if rec.InsuredID != "INS400123" {
		t.Errorf("InsuredID: got %q", rec.InsuredID)
	}
	if rec.Relationship != model.RelationshipSelf {
		t.Errorf("Relationship: got %q", rec.Relationship)
	}
	if rec.PatientPhone != "(503) 555-0142" {
		t.Errorf("PatientPhone: got %q", rec.PatientPhone)
	}
}

func TestToClaimRecord_PrivacyModeCoversBothNameFields(t *testing.T) {
	opts := defaultOpts
	opts.IncludePatientName = false
	rec := ToClaimRecord(testAggregate(), opts)

	// Patient and insured names must move to initials together; a full name
	// leaking through either field defeats the privacy option.
	if rec.PatientName != "S.J." {
		t.Errorf("PatientName: got %q, want S.J.", rec.PatientName)
	}
	if rec.InsuredName != "S.J." {
		t.Errorf("InsuredName: got %q, want S.J.", rec.InsuredName)
	}
}

func TestToClaimRecord_Financials(t *testing.T) {
	rec := ToClaimRecord(testAggregate(), defaultOpts)

	if !rec.BalanceDue.Equal(decimal.RequireFromString("125.00")) {
		t.Errorf("BalanceDue: got %s", rec.BalanceDue)
	}
	if !rec.AcceptAssignment {
		t.Error("AcceptAssignment should carry through")
	}
}

func TestToClaimRecord_SignatureDateOnlyWhenOnFile(t *testing.T) {
	agg := testAggregate()
	agg.Charge.SignatureOnFile = false

	rec := ToClaimRecord(agg, defaultOpts)
	if rec.SignatureDate != nil {
		t.Errorf("SignatureDate should be nil without a signature on file, got %v", rec.SignatureDate)
	}
}

func TestToClaimRecord_BillingFallbacks(t *testing.T) {
	t.Run("charge_override_wins", func(t *testing.T) {
		agg := testAggregate()
		agg.Charge.BillingNPI = "9999999999"
		agg.Charge.BillingTaxID = "11-1111111"
		agg.Provider.BillingNPI = "8888888888"

		rec := ToClaimRecord(agg, defaultOpts)
		if rec.BillingProvider.NPI != "9999999999" {
			t.Errorf("BillingProvider.NPI: got %q", rec.BillingProvider.NPI)
		}
		if rec.BillingTaxID != "11-1111111" {
			t.Errorf("BillingTaxID: got %q", rec.BillingTaxID)
		}
	})

	t.Run("provider_billing_npi_next", func(t *testing.T) {
		agg := testAggregate()
		agg.Provider.BillingNPI = "8888888888"

		rec := ToClaimRecord(agg, defaultOpts)
		if rec.BillingProvider.NPI != "8888888888" {
			t.Errorf("BillingProvider.NPI: got %q", rec.BillingProvider.NPI)
		}
	})

	t.Run("rendering_npi_last", func(t *testing.T) {
		rec := ToClaimRecord(testAggregate(), defaultOpts)
		if rec.BillingProvider.NPI != "1234567893" {
			t.Errorf("BillingProvider.NPI: got %q", rec.BillingProvider.NPI)
		}
		if rec.BillingTaxID != "93-1234567" {
			t.Errorf("BillingTaxID: got %q", rec.BillingTaxID)
		}
	})
}

func TestToClaimRecord_LineDefaults(t *testing.T) {
	agg := testAggregate()
	agg.Charge.PlaceOfService = ""
	agg.Charge.ServiceDateTo = time.Time{}

	rec := ToClaimRecord(agg, defaultOpts)
	lines := rec.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].PlaceOfService != "11" {
		t.Errorf("PlaceOfService default: got %q", lines[0].PlaceOfService)
	}
	if !lines[0].DateTo.Equal(lines[0].DateFrom) {
		t.Errorf("DateTo should default to DateFrom, got %v", lines[0].DateTo)
	}
	if lines[0].RenderingNPI != "1234567893" {
		t.Errorf("RenderingNPI should fall back to provider NPI, got %q", lines[0].RenderingNPI)
	}
}

func TestToClaimRecord_GroupChargesBecomeLines(t *testing.T) {
	agg := testAggregate()
	companion := agg.Charge
	companion.ID = 1043
	companion.ProcedureCode = "96127"
	companion.ChargeAmount = decimal.RequireFromString("40.00")
	agg.GroupCharges = []model.Charge{companion}

	rec := ToClaimRecord(agg, defaultOpts)
	lines := rec.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ProcedureCode != "90834" || lines[1].ProcedureCode != "96127" {
		t.Errorf("anchor charge must come first: %q, %q",
			lines[0].ProcedureCode, lines[1].ProcedureCode)
	}
}

func TestToClaimRecord_SevenLinesTruncateToSix(t *testing.T) {
	agg := testAggregate()
	for i := 0; i < 6; i++ {
		companion := agg.Charge
		companion.ID = agg.Charge.ID + int64(i) + 1
		agg.GroupCharges = append(agg.GroupCharges, companion)
	}

	rec := ToClaimRecord(agg, defaultOpts)
	if len(rec.Lines()) != model.MaxServiceLines {
		t.Errorf("expected %d lines, got %d", model.MaxServiceLines, len(rec.Lines()))
	}
	if rec.TruncatedLines != 1 {
		t.Errorf("TruncatedLines: got %d, want 1", rec.TruncatedLines)
	}
}
