package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge statuses as recorded by the upstream billing system. Only charges
// past draft may be exported as claim documents.
const (
	ChargeStatusDraft     = "draft"
	ChargeStatusReady     = "ready"
	ChargeStatusSubmitted = "submitted"
	ChargeStatusPaid      = "paid"
)

// Charge is one billable service charge as owned by the upstream billing
// system. The engine never mutates or persists it.
type Charge struct {
	ID     int64
	Status string

	ServiceDateFrom time.Time
	ServiceDateTo   time.Time
	PlaceOfService  string
	ProcedureCode   string
	Modifiers       []string
	DiagnosisCodes  []string
	DiagnosisPtrs   []string
	Units           int
	ChargeAmount    decimal.Decimal

	// TotalCharge is the claim total declared upstream. For a single-charge
	// claim it should equal ChargeAmount; a divergence beyond one cent is
	// treated as upstream corruption by the validator.
	TotalCharge decimal.Decimal
	AmountPaid  decimal.Decimal

	// Optional overrides; the mapper falls back to the provider's
	// on-file identifiers when these are blank.
	RenderingNPI string
	BillingNPI   string
	BillingTaxID string

	AcceptAssignment bool
	SignatureOnFile  bool
	SignatureDate    *time.Time
	PriorAuthNumber  string

	InsuredRelationship string
	EmployerName        string
	SecondaryInsured    string
}

// ExportableStatus reports whether the charge may be turned into a claim
// document. Draft charges are rejected before mapping even begins.
func (c *Charge) ExportableStatus() bool {
	return c.Status != ChargeStatusDraft && c.Status != ""
}

// Patient is the linked patient record from the upstream system.
type Patient struct {
	ID          int64
	LastName    string
	FirstName   string
	DateOfBirth time.Time
	Address     Address
	Phone       string
	InsuranceID string
}

// Provider is the linked provider record from the upstream system.
type Provider struct {
	ID         int64
	LastName   string
	FirstName  string
	NPI        string
	BillingNPI string
	TaxID      string
	Address    Address
	Phone      string
}

// ChargeAggregate bundles a charge with its linked patient and provider,
// plus any companion charges grouped onto the same claim. It is the input
// boundary between the upstream persistence collaborator and this engine.
type ChargeAggregate struct {
	Charge   Charge
	Patient  Patient
	Provider Provider

	// GroupCharges are additional charges sharing the anchor charge's claim
	// group, each becoming one more service line on the form.
	GroupCharges []Charge
}
