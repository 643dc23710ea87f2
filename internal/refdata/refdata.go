// Package refdata holds the configured reference code sets the engine
// validates against. A Reference is loaded once at process start and treated
// as immutable for the process lifetime; concurrent reads need no locking.
package refdata

import (
	"sort"
	"strings"
)

// CodeSet is a closed membership list. Validation against a CodeSet rejects
// any code not explicitly enumerated, even if correctly shaped.
type CodeSet struct {
	codes  map[string]struct{}
	sorted []string
}

// NewCodeSet builds a CodeSet from the given codes, trimming and uppercasing each.
func NewCodeSet(codes ...string) *CodeSet {
	s := &CodeSet{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := s.codes[c]; ok {
			continue
		}
		s.codes[c] = struct{}{}
		s.sorted = append(s.sorted, c)
	}
	sort.Strings(s.sorted)
	return s
}

// Contains reports membership. Matching is exact after trim+uppercase.
func (s *CodeSet) Contains(code string) bool {
	_, ok := s.codes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// List returns the members in sorted order, for error messages and reports.
func (s *CodeSet) List() []string {
	return s.sorted
}

// Len returns the member count.
func (s *CodeSet) Len() int {
	return len(s.codes)
}

// Reference bundles all code sets and defaults the engine consults.
type Reference struct {
	// ApprovedProcedures is the closed set of procedure codes the practice
	// bills; anything else is a structural validation error.
	ApprovedProcedures *CodeSet
	// ApprovedModifiers is the closed set of billing modifiers.
	ApprovedModifiers *CodeSet
	// CommonProcedures is the curated subset conventionally billed in this
	// service domain; codes outside it draw a scrub advisory, not an error.
	CommonProcedures *CodeSet
	// TelehealthModifiers mark a service as delivered remotely.
	TelehealthModifiers *CodeSet
	// TelehealthProcedures are procedures typically billable via telehealth.
	TelehealthProcedures *CodeSet
	// SingleEncounterProcedures are conventionally billed with one unit per
	// encounter; more than one unit draws a scrub advisory.
	SingleEncounterProcedures *CodeSet

	// DefaultPlaceOfService is applied when the source charge omits one.
	DefaultPlaceOfService string
}

// Default returns the built-in reference data for outpatient behavioral
// health billing. Deployments override these sets via the YAML config file.
func Default() *Reference {
	return &Reference{
		ApprovedProcedures: NewCodeSet(
			"90791", "90792",
			"90832", "90833", "90834", "90836", "90837", "90838",
			"90839", "90840",
			"90846", "90847", "90849", "90853",
			"90875", "96127", "96130", "96131",
			"99212", "99213", "99214", "99404",
			"H0031", "H2011",
		),
		ApprovedModifiers: NewCodeSet(
			"25", "59", "76", "93", "95",
			"AF", "AH", "AJ", "GQ", "GT",
			"HJ", "HN", "HO", "KX", "UN",
		),
		CommonProcedures: NewCodeSet(
			"90791", "90832", "90834", "90837", "90846", "90847", "90853",
		),
		TelehealthModifiers: NewCodeSet("93", "95", "GQ", "GT"),
		TelehealthProcedures: NewCodeSet(
			"90791", "90792", "90832", "90834", "90837",
			"90846", "90847", "99212", "99213", "99214",
		),
		SingleEncounterProcedures: NewCodeSet(
			"90791", "90792", "90832", "90834", "90837", "90846", "90847", "99404",
		),
		DefaultPlaceOfService: "11",
	}
}
