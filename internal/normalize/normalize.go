package normalize

import (
	"fmt"

	"github.com/gyeh/claimgen/internal/model"
)

// ToAggregate converts a Parquet-read ChargeExportRow into the charge
// aggregate shape consumed by mapping and validation. Only genuinely
// unusable rows error out here; field-level problems are left for the
// validator so the caller gets the complete correction list.
func ToAggregate(row *model.ChargeExportRow) (*model.ChargeAggregate, error) {
	dateFrom := ParseDate(row.ServiceDateFrom)
	if dateFrom == nil && row.ServiceDateFrom != "" {
		return nil, fmt.Errorf("charge %d: unparseable service date %q", row.ChargeID, row.ServiceDateFrom)
	}

	charge := model.Charge{
		ID:               row.ChargeID,
		Status:           row.Status,
		PlaceOfService:   derefStr(row.PlaceOfService),
		ProcedureCode:    Code(row.ProcedureCode),
		Modifiers:        CodeList(derefStr(row.Modifiers)),
		DiagnosisCodes:   DiagnosisList(derefStr(row.DiagnosisCodes)),
		DiagnosisPtrs:    CodeList(derefStr(row.DiagnosisPtrs)),
		Units:            int(row.Units),
		ChargeAmount:     Amount(row.ChargeAmount),
		AmountPaid:       OptAmount(row.AmountPaid),
		RenderingNPI:     Code(derefStr(row.RenderingNPI)),
		BillingNPI:       Code(derefStr(row.BillingNPI)),
		BillingTaxID:     derefStr(row.BillingTaxID),
		AcceptAssignment: row.AcceptAssignment,
		SignatureOnFile:  row.SignatureOnFile,
		SignatureDate:    ParseDate(derefStr(row.SignatureDate)),
		PriorAuthNumber:  derefStr(row.PriorAuthNumber),

		InsuredRelationship: derefStr(row.InsuredRelationship),
		EmployerName:        derefStr(row.EmployerName),
		SecondaryInsured:    derefStr(row.SecondaryInsured),
	}
	if dateFrom != nil {
		charge.ServiceDateFrom = *dateFrom
	}
	if to := ParseDate(derefStr(row.ServiceDateTo)); to != nil {
		charge.ServiceDateTo = *to
	} else {
		charge.ServiceDateTo = charge.ServiceDateFrom
	}
	if row.TotalCharge != nil {
		charge.TotalCharge = Amount(*row.TotalCharge)
	} else {
		charge.TotalCharge = charge.ChargeAmount
	}

	patient := model.Patient{
		LastName:  row.PatientLastName,
		FirstName: row.PatientFirstName,
		Address: model.Address{
			Street: derefStr(row.PatientStreet),
			City:   derefStr(row.PatientCity),
			State:  derefStr(row.PatientState),
			Zip:    derefStr(row.PatientZip),
		},
		Phone:       derefStr(row.PatientPhone),
		InsuranceID: row.InsuranceID,
	}
	if dob := ParseDate(row.PatientDOB); dob != nil {
		patient.DateOfBirth = *dob
	}

	provider := model.Provider{
		LastName:   row.ProviderLastName,
		FirstName:  row.ProviderFirstName,
		NPI:        Code(row.ProviderNPI),
		BillingNPI: Code(derefStr(row.ProviderBillingNPI)),
		TaxID:      derefStr(row.ProviderTaxID),
		Address: model.Address{
			Street: derefStr(row.ProviderStreet),
			City:   derefStr(row.ProviderCity),
			State:  derefStr(row.ProviderState),
			Zip:    derefStr(row.ProviderZip),
		},
		Phone: derefStr(row.ProviderPhone),
	}

	return &model.ChargeAggregate{
		Charge:   charge,
		Patient:  patient,
		Provider: provider,
	}, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
