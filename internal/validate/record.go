package validate

import (
	"fmt"

	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/normalize"
	"github.com/gyeh/claimgen/internal/refdata"
)

// Validator runs whole-record structural validation against a set of
// reference code lists. It is stateless beyond the immutable reference data
// and safe for concurrent use.
type Validator struct {
	ref *refdata.Reference
}

// New returns a Validator bound to the given reference data.
func New(ref *refdata.Reference) *Validator {
	return &Validator{ref: ref}
}

// Record validates a claim record exhaustively: every violation is collected
// in one pass so the caller can present a complete correction list, matching
// the form-resubmission workflow where many fields get fixed at once.
func (v *Validator) Record(rec *model.ClaimRecord) *Result {
	res := &Result{}

	v.requiredFields(rec, res)
	for i, sl := range rec.Lines() {
		v.serviceLine(i+1, sl, res)
	}
	v.financials(rec, res)

	return res
}

func (v *Validator) requiredFields(rec *model.ClaimRecord, res *Result) {
	if rec.InsuredID == "" {
		res.AddError("insured identifier is required")
	}
	if rec.PatientName == "" {
		res.AddError("patient name is required")
	}
	if rec.PatientDOB.IsZero() {
		res.AddError("patient date of birth is required")
	}
	if rec.InsuredName == "" {
		res.AddError("insured name is required")
	}
	if rec.PatientAddress.Empty() {
		res.AddError("patient address is required")
	} else if rec.PatientAddress.Street == "" || rec.PatientAddress.City == "" ||
		rec.PatientAddress.State == "" || rec.PatientAddress.Zip == "" {
		res.AddError("patient address is incomplete")
	}
	if len(rec.Lines()) == 0 {
		res.AddError("at least one service line is required")
	}

	if rec.RenderingProvider.NPI == "" {
		res.AddError("rendering provider identifier is required")
	} else if err := NPI(rec.RenderingProvider.NPI); err != nil {
		res.AddError(fmt.Sprintf("rendering %s", err))
	}
	if rec.BillingProvider.NPI == "" {
		res.AddError("billing provider identifier is required")
	} else if err := NPI(rec.BillingProvider.NPI); err != nil {
		res.AddError(fmt.Sprintf("billing %s", err))
	}
	if rec.BillingTaxID == "" {
		res.AddError("billing tax identifier is required")
	} else if err := TaxID(rec.BillingTaxID); err != nil {
		res.AddError(fmt.Sprintf("billing %s", err))
	}
}

func (v *Validator) serviceLine(n int, sl model.ServiceLine, res *Result) {
	prefix := fmt.Sprintf("service line %d: ", n)

	if sl.DateFrom.IsZero() {
		res.AddError(prefix + "date of service is required")
	}
	if sl.PlaceOfService == "" {
		res.AddError(prefix + "place of service is required")
	} else {
		if err := PlaceOfService(sl.PlaceOfService); err != nil {
			res.AddError(prefix + err.Error())
		} else if _, ok := model.PlaceOfServiceByCode(sl.PlaceOfService); !ok {
			res.AddError(prefix + fmt.Sprintf("unknown place of service code %q", sl.PlaceOfService))
		}
	}

	if sl.ProcedureCode == "" {
		res.AddError(prefix + "procedure code is required")
	} else if err := ProcedureCode(sl.ProcedureCode, v.ref.ApprovedProcedures); err != nil {
		res.AddError(prefix + err.Error())
	}

	for _, msg := range Modifiers(sl.Modifiers) {
		res.AddError(prefix + msg)
	}
	for _, msg := range ApprovedModifiers(sl.Modifiers, v.ref.ApprovedModifiers) {
		res.AddError(prefix + msg)
	}
	for _, msg := range DiagnosisPointers(sl.DiagnosisPointers) {
		res.AddError(prefix + msg)
	}

	if sl.Units < 1 || sl.Units > 99 {
		res.AddError(prefix + fmt.Sprintf("units must be between 1 and 99, got %d", sl.Units))
	}
	if !sl.ChargeAmount.IsPositive() {
		res.AddError(prefix + "charge amount must be greater than zero")
	}
	if sl.RenderingNPI == "" {
		res.AddError(prefix + "rendering provider identifier is required")
	} else if err := NPI(sl.RenderingNPI); err != nil {
		res.AddError(prefix + err.Error())
	}
}

// financials enforces the cross-record money invariants. A line-sum mismatch
// beyond one cent is a hard error, not a warning: it signals a corrupted
// upstream charge record, not a billing-quality issue.
func (v *Validator) financials(rec *model.ClaimRecord, res *Result) {
	if len(rec.Lines()) == 0 {
		return
	}

	sum := rec.LineChargeTotal()
	if !normalize.WithinCentTolerance(sum, rec.TotalCharge) {
		res.AddError(fmt.Sprintf(
			"service line charges total %s but claim total charge is %s",
			sum.StringFixed(2), rec.TotalCharge.StringFixed(2)))
	}

	expectedBalance := rec.TotalCharge.Sub(rec.AmountPaid)
	if !rec.BalanceDue.Equal(expectedBalance) {
		res.AddError(fmt.Sprintf(
			"balance due %s does not equal total charge %s minus amount paid %s",
			rec.BalanceDue.StringFixed(2), rec.TotalCharge.StringFixed(2), rec.AmountPaid.StringFixed(2)))
	}
}
