// Package validate implements structural claim validation. Errors produced
// here block document generation; advisory findings live in package scrub.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gyeh/claimgen/internal/refdata"
)

var (
	modifierPattern = regexp.MustCompile(`^[A-Z0-9]{2}$`)
	npiPattern      = regexp.MustCompile(`^[0-9]{10}$`)
	taxIDPattern    = regexp.MustCompile(`^[0-9]{2}-[0-9]{7}$`)
	posPattern      = regexp.MustCompile(`^[0-9]{2}$`)
)

// ProcedureCode checks membership in the approved closed set. A correctly
// shaped but unlisted code is rejected just like a malformed one; the error
// enumerates the full approved set so the caller can correct the charge.
func ProcedureCode(code string, approved *refdata.CodeSet) error {
	if approved.Contains(code) {
		return nil
	}
	return fmt.Errorf("procedure code must be one of: %s", strings.Join(approved.List(), ", "))
}

// Modifiers checks a service line's modifier list. The count violation and
// each per-item format violation are reported independently; nothing
// short-circuits, so a caller sees every problem in one pass. An empty list
// is valid.
func Modifiers(mods []string) []string {
	var errs []string
	if len(mods) > 4 {
		errs = append(errs, fmt.Sprintf("modifiers: at most 4 allowed, got %d", len(mods)))
	}
	for _, m := range mods {
		if !modifierPattern.MatchString(m) {
			errs = append(errs, fmt.Sprintf("modifier %q must be 2 alphanumeric characters", m))
		}
	}
	return errs
}

// ApprovedModifiers checks each well-formed modifier against the approved
// closed set. Format violations are Modifiers' concern; this only reports
// membership failures.
func ApprovedModifiers(mods []string, approved *refdata.CodeSet) []string {
	var errs []string
	for _, m := range mods {
		if !modifierPattern.MatchString(m) {
			continue
		}
		if !approved.Contains(m) {
			errs = append(errs, fmt.Sprintf("modifier %q is not an approved modifier", m))
		}
	}
	return errs
}

// DiagnosisPointers checks a service line's pointer letters: 1-4 entries,
// each one of A-D, no duplicates.
func DiagnosisPointers(ptrs []string) []string {
	var errs []string
	if len(ptrs) == 0 {
		errs = append(errs, "at least one diagnosis pointer is required")
	}
	if len(ptrs) > 4 {
		errs = append(errs, fmt.Sprintf("diagnosis pointers: at most 4 allowed, got %d", len(ptrs)))
	}
	seen := make(map[string]bool, len(ptrs))
	for _, p := range ptrs {
		switch p {
		case "A", "B", "C", "D":
			if seen[p] {
				errs = append(errs, fmt.Sprintf("duplicate diagnosis pointer %q", p))
			}
			seen[p] = true
		default:
			errs = append(errs, fmt.Sprintf("diagnosis pointer %q must be one of A, B, C, D", p))
		}
	}
	return errs
}

// NPI validates a 10-digit provider identifier. The field is optional at
// this level: absence is valid, malformed presence is an error. Whether the
// field is required is a record-level rule.
func NPI(id string) error {
	if id == "" {
		return nil
	}
	if !npiPattern.MatchString(id) {
		return fmt.Errorf("provider identifier %q must be exactly 10 digits", id)
	}
	return nil
}

// TaxID validates a tax identifier in NN-NNNNNNN form, with the same
// absent-valid / malformed-error distinction as NPI.
func TaxID(id string) error {
	if id == "" {
		return nil
	}
	if !taxIDPattern.MatchString(id) {
		return fmt.Errorf("tax identifier %q must match format NN-NNNNNNN", id)
	}
	return nil
}

// PlaceOfService validates a two-digit place-of-service code shape.
func PlaceOfService(code string) error {
	if code == "" {
		return nil
	}
	if !posPattern.MatchString(code) {
		return fmt.Errorf("place of service %q must be a 2-digit code", code)
	}
	return nil
}
