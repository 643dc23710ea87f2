package normalize

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// phoneRegion is the default region for upstream phone numbers.
const phoneRegion = "US"

// Phone formats a phone number in national form, e.g. "(555) 867-5309".
// Unparseable or invalid input is returned trimmed but otherwise as-is; the
// form tolerates free-text phone fields.
func Phone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	p, err := libphonenumber.Parse(raw, phoneRegion)
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return raw
	}
	return libphonenumber.Format(p, libphonenumber.NATIONAL)
}
