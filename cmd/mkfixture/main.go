// mkfixture synthesizes a small Parquet charge-export fixture for local runs
// and tests: a spread of clean therapy charges plus, optionally, rows with
// known defects so the validation path has something to reject.
// Usage: go run ./cmd/mkfixture --out testdata/charges-small.parquet --rows 40 --bad 5
package main

import (
	"flag"
	"fmt"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimgen/internal/model"
)

var (
	procedures = []string{"90791", "90832", "90834", "90837", "90846", "90847", "90853"}
	patients   = [][2]string{
		{"Alvarez", "Maria"}, {"Chen", "Wei"}, {"Johnson", "Dana"},
		{"Okafor", "Chidi"}, {"Smith", "Jordan"}, {"Nguyen", "Linh"},
	}
	diagnoses = []string{"F32.9", "F41.1", "F43.10", "F90.0", "F33.1", "F42.2"}
)

func main() {
	out := flag.String("out", "testdata/charges-small.parquet", "output parquet")
	rows := flag.Int("rows", 40, "number of clean rows")
	bad := flag.Int("bad", 0, "number of defective rows appended after the clean ones")
	flag.Parse()

	var all []model.ChargeExportRow
	for i := 0; i < *rows; i++ {
		all = append(all, cleanRow(int64(i+1), i))
	}
	for i := 0; i < *bad; i++ {
		all = append(all, badRow(int64(*rows+i+1), i))
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	writer := goparquet.NewGenericWriter[model.ChargeExportRow](f)
	if _, err := writer.Write(all); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows (%d clean, %d defective) to %s\n", len(all), *rows, *bad, *out)
}

func cleanRow(id int64, i int) model.ChargeExportRow {
	p := patients[i%len(patients)]
	day := i%28 + 1
	amount := 125.00 + float64(i%4)*25

	return model.ChargeExportRow{
		ChargeID:        id,
		Status:          "ready",
		ServiceDateFrom: fmt.Sprintf("2026-07-%02d", day),
		PlaceOfService:  strptr("11"),
		ProcedureCode:   procedures[i%len(procedures)],
		Modifiers:       strptr("95"),
		DiagnosisCodes:  strptr(diagnoses[i%len(diagnoses)]),
		DiagnosisPtrs:   strptr("A"),
		Units:           1,
		ChargeAmount:    amount,

		AcceptAssignment: true,
		SignatureOnFile:  true,
		SignatureDate:    strptr(fmt.Sprintf("2026-07-%02d", day)),

		PatientLastName:  p[0],
		PatientFirstName: p[1],
		PatientDOB:       fmt.Sprintf("19%02d-03-%02d", 70+i%25, day),
		PatientStreet:    strptr(fmt.Sprintf("%d Maple St", 100+i)),
		PatientCity:      strptr("Portland"),
		PatientState:     strptr("OR"),
		PatientZip:       strptr("97201"),
		PatientPhone:     strptr("503-555-0142"),
		InsuranceID:      fmt.Sprintf("INS%06d", 400000+id),

		ProviderLastName:  "Reyes",
		ProviderFirstName: "Camille",
		ProviderNPI:       "1234567893",
		ProviderTaxID:     strptr("93-1234567"),
		ProviderStreet:    strptr("500 SW Clinic Way"),
		ProviderCity:      strptr("Portland"),
		ProviderState:     strptr("OR"),
		ProviderZip:       strptr("97204"),
		ProviderPhone:     strptr("503-555-0100"),
	}
}

// badRow cycles through the defect classes the validator must catch.
func badRow(id int64, i int) model.ChargeExportRow {
	row := cleanRow(id, int(id))
	switch i % 5 {
	case 0:
		row.ProcedureCode = "99999" // not in the approved set
	case 1:
		row.Modifiers = strptr("Q1,Q2,Q3,Q4,Q5") // too many modifiers
	case 2:
		row.ProviderNPI = "12345" // malformed NPI
	case 3:
		row.Status = "draft" // not exportable
	case 4:
		row.TotalCharge = f64ptr(row.ChargeAmount + 10) // diverges from line total
	}
	return row
}

func strptr(s string) *string { return &s }

func f64ptr(f float64) *float64 { return &f }
