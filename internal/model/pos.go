package model

// PlaceOfService is one CMS-defined two-digit place-of-service code.
type PlaceOfService struct {
	Code string // e.g. "11"
	Name string // e.g. "Office"
}

// PlaceOfServiceCodes lists the place-of-service codes accepted on the form,
// in canonical order.
var PlaceOfServiceCodes = []PlaceOfService{
	{Code: "02", Name: "Telehealth Provided Other than in Patient's Home"},
	{Code: "03", Name: "School"},
	{Code: "10", Name: "Telehealth Provided in Patient's Home"},
	{Code: "11", Name: "Office"},
	{Code: "12", Name: "Home"},
	{Code: "49", Name: "Independent Clinic"},
	{Code: "50", Name: "Federally Qualified Health Center"},
	{Code: "53", Name: "Community Mental Health Center"},
	{Code: "99", Name: "Other Place of Service"},
}

// PlaceOfServiceByCode returns the PlaceOfService for the given code, or ok=false.
func PlaceOfServiceByCode(code string) (PlaceOfService, bool) {
	for _, pos := range PlaceOfServiceCodes {
		if pos.Code == code {
			return pos, true
		}
	}
	return PlaceOfService{}, false
}
