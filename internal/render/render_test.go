package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/gyeh/claimgen/internal/model"
)

var generatedAt = time.Date(2026, 8, 23, 10, 15, 0, 0, time.UTC)

func testRecord(t *testing.T, lineCount int) *model.ClaimRecord {
	t.Helper()
	sigDate := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	rec := &model.ClaimRecord{
		InsuredID:   "INS400123",
		PatientName: "Johnson, Sarah",
		PatientDOB:  time.Date(1985, 3, 12, 0, 0, 0, 0, time.UTC),
		PatientAddress: model.Address{
			Street: "100 Maple St", City: "Portland", State: "OR", Zip: "97201",
		},
		PatientPhone:    "(503) 555-0142",
		Relationship:    model.RelationshipSelf,
		InsuredName:     "Johnson, Sarah",
		SignatureOnFile: true,
		SignatureDate:   &sigDate,
		DiagnosisCodes:  []string{"F32.9", "F41.1"},
		RenderingProvider: model.ProviderBlock{
			Name: "Reyes, Camille", NPI: "1234567893",
			Address: model.Address{Street: "500 SW Clinic Way", City: "Portland", State: "OR", Zip: "97204"},
			Phone:   "(503) 555-0100",
		},
		BillingProvider: model.ProviderBlock{
			Name: "Reyes, Camille", NPI: "1234567893",
			Address: model.Address{Street: "500 SW Clinic Way", City: "Portland", State: "OR", Zip: "97204"},
			Phone:   "(503) 555-0100",
		},
		BillingTaxID:     "93-1234567",
		AcceptAssignment: true,
	}

	total := decimal.Zero
	for i := 0; i < lineCount; i++ {
		amount := decimal.RequireFromString("150.00")
		err := rec.AddLine(model.ServiceLine{
			DateFrom:          time.Date(2026, 7, 14+i, 0, 0, 0, 0, time.UTC),
			DateTo:            time.Date(2026, 7, 14+i, 0, 0, 0, 0, time.UTC),
			PlaceOfService:    "11",
			ProcedureCode:     "90834",
			Modifiers:         []string{"GT"},
			DiagnosisPointers: []string{"A"},
			Units:             1,
			ChargeAmount:      amount,
			RenderingNPI:      "1234567893",
		})
		if err != nil {
			rec.TruncatedLines++
			continue
		}
		total = total.Add(amount)
	}
	rec.TotalCharge = total
	rec.AmountPaid = decimal.RequireFromString("25.00")
	rec.BalanceDue = rec.TotalCharge.Sub(rec.AmountPaid)
	return rec
}

func openArtifact(t *testing.T, a *Artifact) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("open rendered document: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, ref)
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", ref, err)
	}
	return v
}

func TestRecord_FormCells(t *testing.T) {
	artifact, warnings, err := Record(testRecord(t, 1), 1042, generatedAt)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	f := openArtifact(t, artifact)

	checks := map[string]string{
		CellInsuredID:    "INS400123",
		CellPatientName:  "Johnson, Sarah",
		CellPatientDOB:   "03/12/1985",
		CellInsuredName:  "Johnson, Sarah",
		CellRelationship: "SELF",
		CellPatientAddr:  "100 Maple St, Portland, OR 97201",
		CellPatientPhone: "(503) 555-0142",

		CellDiagnosisFirst: "F32.9",
		"C13":              "F41.1",

		CellBillingTaxID:     "93-1234567",
		CellAcceptAssignment: "YES",
		CellTotalCharge:      "150.00",
		CellAmountPaid:       "25.00",
		CellBalanceDue:       "125.00",

		CellFacilityNPI: "1234567893",
		CellBillingName: "Reyes, Camille",
	}
	for ref, want := range checks {
		if got := cell(t, f, ref); got != want {
			t.Errorf("cell %s: got %q, want %q", ref, got, want)
		}
	}
}

func TestRecord_ServiceLineGrid(t *testing.T) {
	artifact, _, err := Record(testRecord(t, 3), 1042, generatedAt)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	f := openArtifact(t, artifact)

	for i := 0; i < 3; i++ {
		row := fmt.Sprintf("%d", ServiceLineFirst+i)
		if got := cell(t, f, ColProcedure+row); got != "90834" {
			t.Errorf("line %d procedure: got %q", i+1, got)
		}
		if got := cell(t, f, ColCharges+row); got != "150.00" {
			t.Errorf("line %d charges: got %q", i+1, got)
		}
		if got := cell(t, f, ColModifiers+row); got != "GT" {
			t.Errorf("line %d modifiers: got %q", i+1, got)
		}
	}

	// The row after the last line stays empty.
	if got := cell(t, f, ColProcedure+fmt.Sprintf("%d", ServiceLineFirst+3)); got != "" {
		t.Errorf("unexpected content after last line: %q", got)
	}
}

func TestRecord_SignatureOnFile(t *testing.T) {
	t.Run("on_file", func(t *testing.T) {
		artifact, _, err := Record(testRecord(t, 1), 1042, generatedAt)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		f := openArtifact(t, artifact)
		for _, ref := range []string{CellPatientSignature, CellInsuredSignature, CellPhysicianSignature} {
			if got := cell(t, f, ref); got != "Signature on File" {
				t.Errorf("cell %s: got %q", ref, got)
			}
		}
		if got := cell(t, f, CellSignatureDate); got != "07/14/2026" {
			t.Errorf("signature date: got %q", got)
		}
	})

	t.Run("not_on_file_stays_blank", func(t *testing.T) {
		rec := testRecord(t, 1)
		rec.SignatureOnFile = false
		artifact, _, err := Record(rec, 1042, generatedAt)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		f := openArtifact(t, artifact)
		for _, ref := range []string{CellPatientSignature, CellSignatureDate, CellPhysicianSignature} {
			if got := cell(t, f, ref); got != "" {
				t.Errorf("cell %s should be blank, got %q", ref, got)
			}
		}
	})
}

func TestRecord_TruncationWarning(t *testing.T) {
	rec := testRecord(t, 7)
	artifact, warnings, err := Record(rec, 1042, generatedAt)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	want := "1 service line(s) beyond the form's 6-line capacity were not rendered"
	if warnings[0] != want {
		t.Errorf("got %q, want %q", warnings[0], want)
	}

	// Only six line rows are populated.
	f := openArtifact(t, artifact)
	if got := cell(t, f, ColProcedure+fmt.Sprintf("%d", ServiceLineFirst+model.MaxServiceLines)); got != "" {
		t.Errorf("seventh line row should be empty, got %q", got)
	}
}

func TestRecord_ArtifactMetadata(t *testing.T) {
	artifact, _, err := Record(testRecord(t, 1), 1042, generatedAt)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if artifact.Filename != "claim_1042_johnson-sarah_20260823-101500.xlsx" {
		t.Errorf("Filename: got %q", artifact.Filename)
	}
	if len(artifact.SHA256) != 64 {
		t.Errorf("SHA256: got %q", artifact.SHA256)
	}
	if len(artifact.Data) == 0 {
		t.Error("empty artifact")
	}
}

func TestFilename_InitialsSlug(t *testing.T) {
	got := Filename(7, "S.J.", generatedAt)
	if got != "claim_7_s-j_20260823-101500.xlsx" {
		t.Errorf("Filename: got %q", got)
	}
	if strings.Contains(got, "johnson") {
		t.Error("privacy-mode filename must not contain the full name")
	}
}
