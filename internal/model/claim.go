package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxServiceLines is the number of service-line rows on the standardized
// claim form. The form layout is fixed; additional lines cannot be rendered.
const MaxServiceLines = 6

// MaxDiagnosisPointers bounds the pointer letters (A-D) a service line may carry.
const MaxDiagnosisPointers = 4

// MaxModifiers bounds the modifier codes a service line may carry.
const MaxModifiers = 4

// ErrServiceLinesFull is returned by AddLine once the form's six line slots are taken.
var ErrServiceLinesFull = errors.New("claim form holds at most 6 service lines")

// Relationship is the patient's relationship to the insured.
type Relationship string

const (
	RelationshipSelf   Relationship = "SELF"
	RelationshipSpouse Relationship = "SPOUSE"
	RelationshipChild  Relationship = "CHILD"
	RelationshipOther  Relationship = "OTHER"
)

// ParseRelationship maps an upstream relationship string onto the form's
// enumerated values, defaulting to SELF for empty and OTHER for unknown input.
func ParseRelationship(s string) Relationship {
	switch Relationship(strings.ToUpper(strings.TrimSpace(s))) {
	case RelationshipSelf, "":
		return RelationshipSelf
	case RelationshipSpouse:
		return RelationshipSpouse
	case RelationshipChild:
		return RelationshipChild
	default:
		return RelationshipOther
	}
}

// Address is a structured mailing address.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Flatten renders the address as a single form-ready line.
func (a Address) Flatten() string {
	parts := make([]string, 0, 3)
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	tail := strings.TrimSpace(a.State + " " + a.Zip)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

// Empty reports whether no address component is populated.
func (a Address) Empty() bool {
	return a.Street == "" && a.City == "" && a.State == "" && a.Zip == ""
}

// ServiceLine is one billable service event on the claim.
type ServiceLine struct {
	DateFrom          time.Time
	DateTo            time.Time
	PlaceOfService    string
	ProcedureCode     string
	Modifiers         []string
	DiagnosisPointers []string
	Units             int
	ChargeAmount      decimal.Decimal
	RenderingNPI      string
}

// ProviderBlock carries the identity fields of a rendering or billing provider.
type ProviderBlock struct {
	Name    string
	NPI     string
	Address Address
	Phone   string
}

// ClaimRecord is the standardized claim document payload. It is built fresh
// per generation request by the mapper, validated, rendered, and discarded;
// it has no persistent identity of its own.
type ClaimRecord struct {
	// Insured / patient identity (form boxes 1-7)
	InsuredID      string
	PatientName    string
	PatientDOB     time.Time
	PatientAddress Address
	PatientPhone   string
	Relationship   Relationship
	InsuredName    string

	// Payer / authorization (boxes 9-14)
	SecondaryInsured string
	EmployerPlanName string
	SignatureOnFile  bool
	SignatureDate    *time.Time
	PriorAuthNumber  string

	// Diagnosis list referenced by service-line pointers A-D (box 21).
	DiagnosisCodes []string

	lines []ServiceLine
	// TruncatedLines counts source service lines that did not fit the form.
	// The renderer reports these as a non-blocking warning.
	TruncatedLines int

	// Billing entities (boxes 24J, 25, 33)
	RenderingProvider ProviderBlock
	BillingProvider   ProviderBlock
	BillingTaxID      string

	// Financial summary (boxes 28-30)
	TotalCharge decimal.Decimal
	AmountPaid  decimal.Decimal
	BalanceDue  decimal.Decimal

	AcceptAssignment bool
}

// AddLine appends a service line, enforcing the form's six-line capacity at
// construction time. Callers that hit ErrServiceLinesFull should record the
// overflow in TruncatedLines rather than drop it silently.
func (c *ClaimRecord) AddLine(sl ServiceLine) error {
	if len(c.lines) >= MaxServiceLines {
		return ErrServiceLinesFull
	}
	c.lines = append(c.lines, sl)
	return nil
}

// Lines returns a copy of the service lines in form order. Mutating the
// returned slice does not affect the record; lines are added through AddLine
// only, so the six-line capacity holds.
func (c *ClaimRecord) Lines() []ServiceLine {
	out := make([]ServiceLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// LineChargeTotal sums the charge amounts of all service lines.
func (c *ClaimRecord) LineChargeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, sl := range c.lines {
		total = total.Add(sl.ChargeAmount)
	}
	return total
}
