// Package mapping adapts the upstream charge/patient/provider aggregate into
// the standardized claim record consumed by validation and rendering. It is
// the boundary to the external persistence collaborator and never mutates
// its input.
package mapping

import (
	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/normalize"
)

// Options controls mapping behavior for one generation request.
type Options struct {
	// IncludePatientName controls privacy mode: when false, patient and
	// insured names are both reduced to initials. The two fields always move
	// together; mismatched privacy levels between linked fields is itself a
	// defect.
	IncludePatientName bool

	// DefaultPlaceOfService is applied to lines whose source charge omits a
	// place-of-service code. Comes from reference data configuration.
	DefaultPlaceOfService string
}

// ToClaimRecord builds a fresh claim record from the aggregate. Defaults are
// applied here (place of service, billing identifier fallbacks) so that
// validation sees the record exactly as it would render.
func ToClaimRecord(agg *model.ChargeAggregate, opts Options) *model.ClaimRecord {
	charge := &agg.Charge

	patientName := normalize.PersonName(agg.Patient.LastName, agg.Patient.FirstName)
	if !opts.IncludePatientName {
		patientName = normalize.Initials(agg.Patient.LastName, agg.Patient.FirstName)
	}

	rec := &model.ClaimRecord{
		InsuredID:      agg.Patient.InsuranceID,
		PatientName:    patientName,
		PatientDOB:     agg.Patient.DateOfBirth,
		PatientAddress: agg.Patient.Address,
		PatientPhone:   normalize.Phone(agg.Patient.Phone),
		Relationship:   model.ParseRelationship(charge.InsuredRelationship),
		// The patient is the insured on this form unless a secondary insured
		// is carried; privacy mode therefore applies to both fields at once.
		InsuredName: patientName,

		SecondaryInsured: charge.SecondaryInsured,
		EmployerPlanName: charge.EmployerName,
		SignatureOnFile:  charge.SignatureOnFile,
		PriorAuthNumber:  charge.PriorAuthNumber,

		DiagnosisCodes: charge.DiagnosisCodes,

		RenderingProvider: providerBlock(&agg.Provider, agg.Provider.NPI),
		BillingProvider:   providerBlock(&agg.Provider, billingNPI(agg)),
		BillingTaxID:      billingTaxID(agg),

		TotalCharge:      charge.TotalCharge,
		AmountPaid:       charge.AmountPaid,
		AcceptAssignment: charge.AcceptAssignment,
	}
	rec.BalanceDue = rec.TotalCharge.Sub(rec.AmountPaid)

	if charge.SignatureOnFile {
		rec.SignatureDate = charge.SignatureDate
	}

	for _, c := range chargeGroup(agg) {
		line := toServiceLine(c, agg.Provider.NPI, opts.DefaultPlaceOfService)
		if err := rec.AddLine(line); err != nil {
			rec.TruncatedLines++
		}
	}

	return rec
}

// chargeGroup returns the anchor charge followed by its claim-group
// companions, each of which becomes one service line.
func chargeGroup(agg *model.ChargeAggregate) []model.Charge {
	group := make([]model.Charge, 0, 1+len(agg.GroupCharges))
	group = append(group, agg.Charge)
	group = append(group, agg.GroupCharges...)
	return group
}

func toServiceLine(c model.Charge, providerNPI, defaultPOS string) model.ServiceLine {
	pos := c.PlaceOfService
	if pos == "" {
		pos = defaultPOS
	}
	renderingNPI := c.RenderingNPI
	if renderingNPI == "" {
		renderingNPI = providerNPI
	}
	dateTo := c.ServiceDateTo
	if dateTo.IsZero() {
		dateTo = c.ServiceDateFrom
	}
	return model.ServiceLine{
		DateFrom:          c.ServiceDateFrom,
		DateTo:            dateTo,
		PlaceOfService:    pos,
		ProcedureCode:     c.ProcedureCode,
		Modifiers:         c.Modifiers,
		DiagnosisPointers: c.DiagnosisPtrs,
		Units:             c.Units,
		ChargeAmount:      c.ChargeAmount,
		RenderingNPI:      renderingNPI,
	}
}

func providerBlock(p *model.Provider, npi string) model.ProviderBlock {
	return model.ProviderBlock{
		Name:    normalize.PersonName(p.LastName, p.FirstName),
		NPI:     npi,
		Address: p.Address,
		Phone:   normalize.Phone(p.Phone),
	}
}

// billingNPI resolves the billing identifier: explicit charge override,
// then the provider's billing identifier, then the rendering identifier.
func billingNPI(agg *model.ChargeAggregate) string {
	if agg.Charge.BillingNPI != "" {
		return agg.Charge.BillingNPI
	}
	if agg.Provider.BillingNPI != "" {
		return agg.Provider.BillingNPI
	}
	return agg.Provider.NPI
}

// billingTaxID resolves the tax identifier: explicit charge override, then
// the provider's on-file tax identifier.
func billingTaxID(agg *model.ChargeAggregate) string {
	if agg.Charge.BillingTaxID != "" {
		return agg.Charge.BillingTaxID
	}
	return agg.Provider.TaxID
}
