package validate

import (
	"strings"
	"testing"

	"github.com/gyeh/claimgen/internal/refdata"
)

func TestProcedureCode_Approved(t *testing.T) {
	ref := refdata.Default()
	for _, code := range []string{"90834", "90791", "H0031"} {
		if err := ProcedureCode(code, ref.ApprovedProcedures); err != nil {
			t.Errorf("ProcedureCode(%q): unexpected error %v", code, err)
		}
	}
}

func TestProcedureCode_UnlistedRejectedWithFullSet(t *testing.T) {
	ref := refdata.Default()

	// 99999 is correctly shaped but not in the closed set; it must be
	// rejected exactly like a malformed code, and the error must enumerate
	// the approved set.
	err := ProcedureCode("99999", ref.ApprovedProcedures)
	if err == nil {
		t.Fatal("expected error for unlisted procedure code")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "procedure code must be one of: ") {
		t.Errorf("unexpected error message: %q", msg)
	}
	for _, member := range []string{"90791", "90834", "H2011"} {
		if !strings.Contains(msg, member) {
			t.Errorf("error message missing approved code %s: %q", member, msg)
		}
	}
}

func TestProcedureCode_SortedEnumeration(t *testing.T) {
	set := refdata.NewCodeSet("90837", "90791", "90834")
	err := ProcedureCode("00000", set)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "procedure code must be one of: 90791, 90834, 90837"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestModifiers_Valid(t *testing.T) {
	for _, mods := range [][]string{nil, {}, {"GT"}, {"25", "59", "GT", "95"}} {
		if errs := Modifiers(mods); len(errs) != 0 {
			t.Errorf("Modifiers(%v): unexpected errors %v", mods, errs)
		}
	}
}

func TestModifiers_CountAndFormatReportedIndependently(t *testing.T) {
	// Five modifiers where one is also malformed: the count violation and
	// the format violation must both surface.
	errs := Modifiers([]string{"GT", "25", "59", "95", "bad"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], "at most 4") {
		t.Errorf("first error should be the count violation: %q", errs[0])
	}
	if !strings.Contains(errs[1], `"bad"`) {
		t.Errorf("second error should name the malformed modifier: %q", errs[1])
	}
}

func TestModifiers_FormatViolations(t *testing.T) {
	for _, m := range []string{"G", "GTT", "g1", "9-"} {
		if errs := Modifiers([]string{m}); len(errs) != 1 {
			t.Errorf("Modifiers([%q]): expected 1 error, got %v", m, errs)
		}
	}
}

func TestApprovedModifiers(t *testing.T) {
	ref := refdata.Default()

	if errs := ApprovedModifiers([]string{"GT", "95"}, ref.ApprovedModifiers); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}

	errs := ApprovedModifiers([]string{"ZZ"}, ref.ApprovedModifiers)
	if len(errs) != 1 || !strings.Contains(errs[0], `"ZZ"`) {
		t.Errorf("expected one membership error for ZZ, got %v", errs)
	}

	// Malformed entries are Modifiers' concern, not repeated here.
	if errs := ApprovedModifiers([]string{"bogus"}, ref.ApprovedModifiers); len(errs) != 0 {
		t.Errorf("malformed modifier should not draw a membership error: %v", errs)
	}
}

func TestDiagnosisPointers(t *testing.T) {
	cases := []struct {
		name string
		ptrs []string
		want int
	}{
		{"single", []string{"A"}, 0},
		{"all_four", []string{"A", "B", "C", "D"}, 0},
		{"empty", nil, 1},
		{"out_of_range", []string{"E"}, 1},
		{"lowercase", []string{"a"}, 1},
		{"duplicate", []string{"A", "A"}, 1},
		{"too_many", []string{"A", "B", "C", "D", "A"}, 2}, // count + duplicate
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := DiagnosisPointers(tc.ptrs)
			if len(errs) != tc.want {
				t.Errorf("DiagnosisPointers(%v): got %d errors %v, want %d",
					tc.ptrs, len(errs), errs, tc.want)
			}
		})
	}
}

func TestNPI_AbsentValidMalformedError(t *testing.T) {
	if err := NPI(""); err != nil {
		t.Errorf("absent NPI must be valid at field level, got %v", err)
	}
	if err := NPI("1234567893"); err != nil {
		t.Errorf("well-formed NPI rejected: %v", err)
	}
	for _, bad := range []string{"12345", "12345678901", "123456789X"} {
		if err := NPI(bad); err == nil {
			t.Errorf("NPI(%q): expected error", bad)
		}
	}
}

func TestTaxID_AbsentValidMalformedError(t *testing.T) {
	if err := TaxID(""); err != nil {
		t.Errorf("absent tax ID must be valid at field level, got %v", err)
	}
	if err := TaxID("12-3456789"); err != nil {
		t.Errorf("well-formed tax ID rejected: %v", err)
	}
	for _, bad := range []string{"123456789", "1-23456789", "12-345678", "ab-cdefghi"} {
		if err := TaxID(bad); err == nil {
			t.Errorf("TaxID(%q): expected error", bad)
		}
	}
}

func TestPlaceOfService(t *testing.T) {
	if err := PlaceOfService(""); err != nil {
		t.Errorf("absent POS is a record-level concern, got %v", err)
	}
	if err := PlaceOfService("11"); err != nil {
		t.Errorf("valid POS rejected: %v", err)
	}
	for _, bad := range []string{"1", "111", "XY"} {
		if err := PlaceOfService(bad); err == nil {
			t.Errorf("PlaceOfService(%q): expected error", bad)
		}
	}
}
