package refdata

import (
	"reflect"
	"testing"
)

func TestNewCodeSet_NormalizesAndDedupes(t *testing.T) {
	s := NewCodeSet(" gt ", "GT", "95", "", "h0031")
	if s.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", s.Len())
	}
	for _, c := range []string{"GT", "gt", " GT ", "95", "H0031"} {
		if !s.Contains(c) {
			t.Errorf("Contains(%q): got false", c)
		}
	}
	if s.Contains("25") {
		t.Error("Contains(25): got true")
	}
}

func TestCodeSet_ListSorted(t *testing.T) {
	s := NewCodeSet("95", "25", "GT")
	want := []string{"25", "95", "GT"}
	if !reflect.DeepEqual(s.List(), want) {
		t.Errorf("List: got %v, want %v", s.List(), want)
	}
}

func TestDefault(t *testing.T) {
	ref := Default()

	if !ref.ApprovedProcedures.Contains("90834") {
		t.Error("90834 missing from approved procedures")
	}
	if ref.ApprovedProcedures.Contains("99999") {
		t.Error("99999 must not be approved")
	}
	if !ref.ApprovedModifiers.Contains("GT") {
		t.Error("GT missing from approved modifiers")
	}
	if ref.DefaultPlaceOfService != "11" {
		t.Errorf("DefaultPlaceOfService: got %q", ref.DefaultPlaceOfService)
	}

	// The common set must be a subset of the approved set.
	for _, code := range ref.CommonProcedures.List() {
		if !ref.ApprovedProcedures.Contains(code) {
			t.Errorf("common procedure %s is not approved", code)
		}
	}
	for _, code := range ref.TelehealthModifiers.List() {
		if !ref.ApprovedModifiers.Contains(code) {
			t.Errorf("telehealth modifier %s is not approved", code)
		}
	}
}
