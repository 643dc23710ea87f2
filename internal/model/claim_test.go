package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testLine(code string) ServiceLine {
	return ServiceLine{
		DateFrom:          time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		DateTo:            time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		PlaceOfService:    "11",
		ProcedureCode:     code,
		DiagnosisPointers: []string{"A"},
		Units:             1,
		ChargeAmount:      decimal.RequireFromString("150.00"),
		RenderingNPI:      "1234567893",
	}
}

func TestClaimRecord_LinesReturnsCopy(t *testing.T) {
	rec := &ClaimRecord{}
	if err := rec.AddLine(testLine("90834")); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	got := rec.Lines()
	got[0].ProcedureCode = "99999"
	got[0].Units = 42

	again := rec.Lines()
	if again[0].ProcedureCode != "90834" || again[0].Units != 1 {
		t.Errorf("mutating the returned slice changed the record: %+v", again[0])
	}
}

func TestClaimRecord_AddLineCapacity(t *testing.T) {
	rec := &ClaimRecord{}
	for i := 0; i < MaxServiceLines; i++ {
		if err := rec.AddLine(testLine("90834")); err != nil {
			t.Fatalf("AddLine %d: %v", i+1, err)
		}
	}

	err := rec.AddLine(testLine("90834"))
	if !errors.Is(err, ErrServiceLinesFull) {
		t.Fatalf("expected ErrServiceLinesFull, got %v", err)
	}
	if len(rec.Lines()) != MaxServiceLines {
		t.Errorf("line count grew past capacity: %d", len(rec.Lines()))
	}
}

func TestClaimRecord_LineChargeTotal(t *testing.T) {
	rec := &ClaimRecord{}
	for _, amt := range []string{"150.00", "40.00"} {
		sl := testLine("90834")
		sl.ChargeAmount = decimal.RequireFromString(amt)
		if err := rec.AddLine(sl); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}
	if got := rec.LineChargeTotal(); !got.Equal(decimal.RequireFromString("190.00")) {
		t.Errorf("LineChargeTotal: got %s", got)
	}
}
