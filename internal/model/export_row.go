package model

// ChargeExportRow mirrors the Parquet schema of a charge export produced by
// the upstream billing system: one row per charge, patient and provider
// fields denormalized onto the row. Money fields are float64 matching the
// Parquet representation; they are converted to decimal during mapping.
type ChargeExportRow struct {
	ChargeID int64  `parquet:"charge_id"`
	Status   string `parquet:"status"`

	ServiceDateFrom string   `parquet:"service_date_from"`
	ServiceDateTo   *string  `parquet:"service_date_to,optional"`
	PlaceOfService  *string  `parquet:"place_of_service,optional"`
	ProcedureCode   string   `parquet:"procedure_code"`
	Modifiers       *string  `parquet:"modifiers,optional"`          // comma-separated
	DiagnosisCodes  *string  `parquet:"diagnosis_codes,optional"`    // comma-separated
	DiagnosisPtrs   *string  `parquet:"diagnosis_pointers,optional"` // comma-separated
	Units           int32    `parquet:"units"`
	ChargeAmount    float64  `parquet:"charge_amount"`
	TotalCharge     *float64 `parquet:"total_charge,optional"`
	AmountPaid      *float64 `parquet:"amount_paid,optional"`

	RenderingNPI *string `parquet:"rendering_npi,optional"`
	BillingNPI   *string `parquet:"billing_npi,optional"`
	BillingTaxID *string `parquet:"billing_tax_id,optional"`

	AcceptAssignment bool    `parquet:"accept_assignment"`
	SignatureOnFile  bool    `parquet:"signature_on_file"`
	SignatureDate    *string `parquet:"signature_date,optional"`
	PriorAuthNumber  *string `parquet:"prior_auth_number,optional"`

	InsuredRelationship *string `parquet:"insured_relationship,optional"`
	EmployerName        *string `parquet:"employer_name,optional"`
	SecondaryInsured    *string `parquet:"secondary_insured,optional"`

	// Patient
	PatientLastName  string  `parquet:"patient_last_name"`
	PatientFirstName string  `parquet:"patient_first_name"`
	PatientDOB       string  `parquet:"patient_dob"`
	PatientStreet    *string `parquet:"patient_street,optional"`
	PatientCity      *string `parquet:"patient_city,optional"`
	PatientState     *string `parquet:"patient_state,optional"`
	PatientZip       *string `parquet:"patient_zip,optional"`
	PatientPhone     *string `parquet:"patient_phone,optional"`
	InsuranceID      string  `parquet:"insurance_id"`

	// Provider
	ProviderLastName   string  `parquet:"provider_last_name"`
	ProviderFirstName  string  `parquet:"provider_first_name"`
	ProviderNPI        string  `parquet:"provider_npi"`
	ProviderBillingNPI *string `parquet:"provider_billing_npi,optional"`
	ProviderTaxID      *string `parquet:"provider_tax_id,optional"`
	ProviderStreet     *string `parquet:"provider_street,optional"`
	ProviderCity       *string `parquet:"provider_city,optional"`
	ProviderState      *string `parquet:"provider_state,optional"`
	ProviderZip        *string `parquet:"provider_zip,optional"`
	ProviderPhone      *string `parquet:"provider_phone,optional"`
}
