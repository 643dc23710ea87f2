// Package render lays a validated claim record out on the fixed-position
// standardized form and produces the binary document artifact. It does not
// re-validate; the generator guarantees validation precedes rendering.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/normalize"
)

// Artifact is the rendered claim document.
type Artifact struct {
	Data     []byte
	Filename string
	SHA256   string
}

// sheetWriter accumulates the first cell-write error so the layout code can
// stay linear instead of checking every SetCellValue call.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(cell string, value any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(SheetName, cell, value)
}

// Record renders the claim record and returns the artifact plus any
// non-blocking renderer notices. Service lines beyond the form's six slots
// are never rendered; their presence is reported as a truncation warning.
func Record(rec *model.ClaimRecord, chargeID int64, generatedAt time.Time) (*Artifact, []string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "H", 22); err != nil {
		return nil, nil, fmt.Errorf("set column widths: %w", err)
	}

	w := &sheetWriter{f: f}
	writeTitle(w)
	writeIdentityBlock(w, rec)
	writePayerBlock(w, rec)
	writeDiagnosisBlock(w, rec)
	writeServiceLines(w, rec)
	writeFinancialBlock(w, rec)
	writeSignatureBlock(w, rec)
	writeBillingBlock(w, rec)
	if w.err != nil {
		return nil, nil, fmt.Errorf("write form cells: %w", w.err)
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err == nil {
		_ = f.SetCellStyle(SheetName, CellTitle, CellTitle, style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("serialize document: %w", err)
	}
	data := buf.Bytes()

	var warnings []string
	if rec.TruncatedLines > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d service line(s) beyond the form's %d-line capacity were not rendered",
			rec.TruncatedLines, model.MaxServiceLines))
	}

	return &Artifact{
		Data:     data,
		Filename: Filename(chargeID, rec.PatientName, generatedAt),
		SHA256:   normalize.ArtifactHash(data),
	}, warnings, nil
}

// Filename derives the deterministic artifact name from the charge identity,
// the patient display name (full or initials), and the generation timestamp.
// The charge ID keeps same-patient documents from colliding within a batch.
func Filename(chargeID int64, patientName string, generatedAt time.Time) string {
	slug := normalize.FileSlug(patientName)
	if slug == "" {
		slug = "claim"
	}
	return fmt.Sprintf("claim_%d_%s_%s.xlsx", chargeID, slug, generatedAt.Format("20060102-150405"))
}

func writeTitle(w *sheetWriter) {
	w.set(CellTitle, "HEALTH INSURANCE CLAIM FORM")
	w.set("A2", "APPROVED FORM 1500 (02-12)")
}

func writeIdentityBlock(w *sheetWriter, rec *model.ClaimRecord) {
	w.set("A4", "1A. INSURED'S I.D. NUMBER")
	w.set(CellInsuredID, rec.InsuredID)
	w.set("A5", "2. PATIENT'S NAME (Last, First)")
	w.set(CellPatientName, rec.PatientName)
	w.set("D5", "3. PATIENT'S BIRTH DATE")
	w.set(CellPatientDOB, formDate(rec.PatientDOB))
	w.set("A6", "4. INSURED'S NAME (Last, First)")
	w.set(CellInsuredName, rec.InsuredName)
	w.set("D6", "6. PATIENT RELATIONSHIP TO INSURED")
	w.set(CellRelationship, string(rec.Relationship))
	w.set("A7", "5. PATIENT'S ADDRESS")
	w.set(CellPatientAddr, rec.PatientAddress.Flatten())
	w.set("D7", "PHONE")
	w.set(CellPatientPhone, rec.PatientPhone)
}

func writePayerBlock(w *sheetWriter, rec *model.ClaimRecord) {
	w.set("A9", "9. OTHER INSURED'S NAME")
	w.set(CellSecondaryInsured, rec.SecondaryInsured)
	w.set("D9", "11B. EMPLOYER'S NAME OR PLAN NAME")
	w.set(CellEmployerPlan, rec.EmployerPlanName)

	w.set("A10", "12. PATIENT'S OR AUTHORIZED PERSON'S SIGNATURE")
	w.set("D10", "DATE")
	w.set("A11", "13. INSURED'S OR AUTHORIZED PERSON'S SIGNATURE")
	if rec.SignatureOnFile {
		w.set(CellPatientSignature, signatureOnFileMarker)
		w.set(CellInsuredSignature, signatureOnFileMarker)
		if rec.SignatureDate != nil {
			w.set(CellSignatureDate, formDate(*rec.SignatureDate))
		}
	}

	w.set("A12", "23. PRIOR AUTHORIZATION NUMBER")
	w.set(CellPriorAuth, rec.PriorAuthNumber)
}

func writeDiagnosisBlock(w *sheetWriter, rec *model.ClaimRecord) {
	w.set("A13", "21. DIAGNOSIS OR NATURE OF ILLNESS (A-D)")
	for i, code := range rec.DiagnosisCodes {
		if i >= model.MaxDiagnosisPointers {
			break
		}
		w.set(fmt.Sprintf("%c%d", 'B'+i, DiagnosisRow), code)
	}
}

func writeServiceLines(w *sheetWriter, rec *model.ClaimRecord) {
	w.set(ColServiceDate+itoa(ServiceHeaderRow), "24A. DATE(S) OF SERVICE")
	w.set(ColPlaceOfService+itoa(ServiceHeaderRow), "B. POS")
	w.set(ColProcedure+itoa(ServiceHeaderRow), "D. PROCEDURE")
	w.set(ColModifiers+itoa(ServiceHeaderRow), "MODIFIER")
	w.set(ColDiagnosisPtrs+itoa(ServiceHeaderRow), "E. DIAG PTR")
	w.set(ColCharges+itoa(ServiceHeaderRow), "F. $ CHARGES")
	w.set(ColUnits+itoa(ServiceHeaderRow), "G. UNITS")
	w.set(ColRenderingNPI+itoa(ServiceHeaderRow), "J. RENDERING PROVIDER ID")

	for i, sl := range rec.Lines() {
		row := itoa(ServiceLineFirst + i)
		w.set(ColServiceDate+row, serviceDates(sl))
		w.set(ColPlaceOfService+row, sl.PlaceOfService)
		w.set(ColProcedure+row, sl.ProcedureCode)
		w.set(ColModifiers+row, strings.Join(sl.Modifiers, " "))
		w.set(ColDiagnosisPtrs+row, strings.Join(sl.DiagnosisPointers, " "))
		w.set(ColCharges+row, sl.ChargeAmount.StringFixed(2))
		w.set(ColUnits+row, sl.Units)
		w.set(ColRenderingNPI+row, sl.RenderingNPI)
	}
}

func writeFinancialBlock(w *sheetWriter, rec *model.ClaimRecord) {
	w.set("A23", "25. FEDERAL TAX I.D. NUMBER")
	w.set(CellBillingTaxID, rec.BillingTaxID)
	w.set("A24", "27. ACCEPT ASSIGNMENT?")
	if rec.AcceptAssignment {
		w.set(CellAcceptAssignment, "YES")
	} else {
		w.set(CellAcceptAssignment, "NO")
	}
	w.set("D23", "28. TOTAL CHARGE")
	w.set(CellTotalCharge, rec.TotalCharge.StringFixed(2))
	w.set("D24", "29. AMOUNT PAID")
	w.set(CellAmountPaid, rec.AmountPaid.StringFixed(2))
	w.set("D25", "30. BALANCE DUE")
	w.set(CellBalanceDue, rec.BalanceDue.StringFixed(2))
}

func writeSignatureBlock(w *sheetWriter, rec *model.ClaimRecord) {
	w.set("A27", "31. SIGNATURE OF PHYSICIAN OR SUPPLIER")
	w.set("D27", "DATE")
	if rec.SignatureOnFile {
		w.set(CellPhysicianSignature, signatureOnFileMarker)
		if rec.SignatureDate != nil {
			w.set(CellPhysicianSigDate, formDate(*rec.SignatureDate))
		}
	}
}

func writeBillingBlock(w *sheetWriter, rec *model.ClaimRecord) {
	w.set("A29", "32. SERVICE FACILITY LOCATION")
	w.set(CellFacilityName, rec.RenderingProvider.Name)
	w.set(CellFacilityAddr, rec.RenderingProvider.Address.Flatten())
	w.set("A31", "32A. NPI")
	w.set(CellFacilityNPI, rec.RenderingProvider.NPI)

	w.set("D29", "33. BILLING PROVIDER INFO & PH#")
	w.set(CellBillingName, rec.BillingProvider.Name)
	w.set(CellBillingAddr, rec.BillingProvider.Address.Flatten())
	w.set("D31", "33A. NPI")
	w.set(CellBillingNPI, rec.BillingProvider.NPI)
	w.set("D32", "PHONE")
	w.set(CellBillingPhone, rec.BillingProvider.Phone)
}

func serviceDates(sl model.ServiceLine) string {
	from := formDate(sl.DateFrom)
	to := formDate(sl.DateTo)
	if to == "" || to == from {
		return from
	}
	return from + " - " + to
}

func formDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
