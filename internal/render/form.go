package render

// SheetName is the single worksheet the claim form is laid out on.
const SheetName = "CMS1500"

// Fixed cell positions for the form's labeled boxes. Values sit one column
// to the right of their label except where noted. Tests read these cells
// back, so changing the layout is a breaking change.
const (
	CellTitle = "A1"

	// Insured / patient identity block (boxes 1-7)
	CellInsuredID    = "B4"
	CellPatientName  = "B5"
	CellPatientDOB   = "E5"
	CellInsuredName  = "B6"
	CellRelationship = "E6"
	CellPatientAddr  = "B7"
	CellPatientPhone = "E7"

	// Payer / authorization block (boxes 9-14)
	CellSecondaryInsured = "B9"
	CellEmployerPlan     = "E9"
	CellPatientSignature = "B10"
	CellSignatureDate    = "E10"
	CellInsuredSignature = "B11"
	CellPriorAuth        = "B12"

	// Box 21 diagnosis codes A-D occupy B13..E13.
	CellDiagnosisFirst = "B13"
	DiagnosisRow       = 13

	// Service line grid (box 24): header row plus six fixed line rows.
	ServiceHeaderRow   = 15
	ServiceLineFirst   = 16
	ColServiceDate     = "A"
	ColPlaceOfService  = "B"
	ColProcedure       = "C"
	ColModifiers       = "D"
	ColDiagnosisPtrs   = "E"
	ColCharges         = "F"
	ColUnits           = "G"
	ColRenderingNPI    = "H"

	// Financial summary block (boxes 25-30)
	CellBillingTaxID     = "B23"
	CellAcceptAssignment = "B24"
	CellTotalCharge      = "E23"
	CellAmountPaid       = "E24"
	CellBalanceDue       = "E25"

	// Signature block (box 31)
	CellPhysicianSignature = "B27"
	CellPhysicianSigDate   = "E27"

	// Service facility / billing provider block (boxes 32-33)
	CellFacilityName  = "B29"
	CellFacilityAddr  = "B30"
	CellFacilityNPI   = "B31"
	CellBillingName   = "E29"
	CellBillingAddr   = "E30"
	CellBillingNPI    = "E31"
	CellBillingPhone  = "E32"
)

// signatureOnFileMarker is the literal rendered in the signature boxes when
// a signature is on file. When it is not, the boxes stay blank; a date is
// never fabricated.
const signatureOnFileMarker = "Signature on File"

// dateLayout is the form's date presentation format.
const dateLayout = "01/02/2006"
