package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// requiredColumns are the export columns a charge file cannot be processed
// without. Everything else is optional and defaulted during mapping.
var requiredColumns = []string{
	"charge_id",
	"procedure_code",
	"charge_amount",
	"patient_last_name",
	"patient_first_name",
	"insurance_id",
	"provider_npi",
}

// ValidateSchema checks that the Parquet schema contains all required columns.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return nil
}
