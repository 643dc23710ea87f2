// Package scrub applies semantic billing-quality rules beyond structural
// validity. Every finding is a warning: scrubbing is advisory, and only
// structural validation blocks document generation. The split lets the
// generator reject genuine data corruption while still surfacing issues a
// human reviewer should see before submission to a payer.
package scrub

import (
	"fmt"
	"regexp"

	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/refdata"
)

// Diagnosis codes are expected to look like F32.9. Code sets evolve faster
// than validators, so non-matching codes are flagged, never rejected.
var diagnosisPattern = regexp.MustCompile(`^[A-Z]\d{2}(\.\d{1,4})?$`)

// Engine runs the advisory rule set against a claim record.
type Engine struct {
	ref *refdata.Reference
}

// New returns an Engine bound to the given reference data.
func New(ref *refdata.Reference) *Engine {
	return &Engine{ref: ref}
}

// Record scrubs a structurally valid claim record and returns the advisory
// warnings, in rule order then line order. An empty slice means clean.
func (e *Engine) Record(rec *model.ClaimRecord) []string {
	var warnings []string

	for i, sl := range rec.Lines() {
		prefix := fmt.Sprintf("service line %d: ", i+1)

		if sl.ProcedureCode != "" && !e.ref.CommonProcedures.Contains(sl.ProcedureCode) {
			warnings = append(warnings, prefix+fmt.Sprintf(
				"procedure code %s is outside the common procedure set for this service domain; review before submission",
				sl.ProcedureCode))
		}

		if mod, ok := e.telehealthModifier(sl.Modifiers); ok &&
			!e.ref.TelehealthProcedures.Contains(sl.ProcedureCode) {
			warnings = append(warnings, prefix+fmt.Sprintf(
				"telehealth modifier %s paired with procedure code %s, which is not typically billed via telehealth",
				mod, sl.ProcedureCode))
		}

		if sl.Units > 1 && e.ref.SingleEncounterProcedures.Contains(sl.ProcedureCode) {
			warnings = append(warnings, prefix+fmt.Sprintf(
				"%d units on procedure code %s, which is conventionally billed once per encounter",
				sl.Units, sl.ProcedureCode))
		}
	}

	for _, code := range rec.DiagnosisCodes {
		if !diagnosisPattern.MatchString(code) {
			warnings = append(warnings, fmt.Sprintf(
				"diagnosis code %q does not match the expected format (e.g. F32.9)", code))
		}
	}
	if len(rec.DiagnosisCodes) > model.MaxDiagnosisPointers {
		warnings = append(warnings, fmt.Sprintf(
			"%d diagnosis codes listed but service lines can only point at the first %d",
			len(rec.DiagnosisCodes), model.MaxDiagnosisPointers))
	}

	return warnings
}

func (e *Engine) telehealthModifier(mods []string) (string, bool) {
	for _, m := range mods {
		if e.ref.TelehealthModifiers.Contains(m) {
			return m, true
		}
	}
	return "", false
}
