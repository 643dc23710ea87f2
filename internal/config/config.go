package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/claimgen/internal/model"
	"github.com/gyeh/claimgen/internal/refdata"
)

// Config holds all runtime configuration for a claimgen run.
type Config struct {
	DSN           string
	FilePath      string // parquet charge export, batch/plan modes
	OutDir        string // directory rendered documents are written to
	LogFormat     string // "text" or "json"
	RefConfigPath string // optional YAML overriding the built-in code sets
	ChargeID      int64  // generate mode
	InitialsOnly  bool   // privacy mode: reduce patient/insured names to initials
}

// yamlConfig is the on-disk YAML structure for reference-data overrides.
// Empty lists keep the built-in defaults.
type yamlConfig struct {
	ApprovedProcedureCodes    []string `yaml:"approved_procedure_codes"`
	ApprovedModifiers         []string `yaml:"approved_modifiers"`
	CommonProcedureCodes      []string `yaml:"common_procedure_codes"`
	TelehealthModifiers       []string `yaml:"telehealth_modifiers"`
	TelehealthProcedureCodes  []string `yaml:"telehealth_procedure_codes"`
	SingleEncounterProcedures []string `yaml:"single_encounter_procedures"`
	DefaultPlaceOfService     string   `yaml:"default_place_of_service"`
}

// LoadReference returns the reference data for this run: the built-in
// defaults, overridden by the YAML file at RefConfigPath when set.
func (c *Config) LoadReference() (*refdata.Reference, error) {
	ref := refdata.Default()
	if c.RefConfigPath == "" {
		return ref, nil
	}

	data, err := os.ReadFile(c.RefConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read reference config: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("parse reference config: %w", err)
	}

	if len(yc.ApprovedProcedureCodes) > 0 {
		for _, code := range yc.ApprovedProcedureCodes {
			if len(code) != 5 {
				return nil, fmt.Errorf("invalid procedure code %q in config: must be 5 characters", code)
			}
		}
		ref.ApprovedProcedures = refdata.NewCodeSet(yc.ApprovedProcedureCodes...)
	}
	if len(yc.ApprovedModifiers) > 0 {
		for _, m := range yc.ApprovedModifiers {
			if len(m) != 2 {
				return nil, fmt.Errorf("invalid modifier %q in config: must be 2 characters", m)
			}
		}
		ref.ApprovedModifiers = refdata.NewCodeSet(yc.ApprovedModifiers...)
	}
	if len(yc.CommonProcedureCodes) > 0 {
		ref.CommonProcedures = refdata.NewCodeSet(yc.CommonProcedureCodes...)
	}
	if len(yc.TelehealthModifiers) > 0 {
		ref.TelehealthModifiers = refdata.NewCodeSet(yc.TelehealthModifiers...)
	}
	if len(yc.TelehealthProcedureCodes) > 0 {
		ref.TelehealthProcedures = refdata.NewCodeSet(yc.TelehealthProcedureCodes...)
	}
	if len(yc.SingleEncounterProcedures) > 0 {
		ref.SingleEncounterProcedures = refdata.NewCodeSet(yc.SingleEncounterProcedures...)
	}
	if yc.DefaultPlaceOfService != "" {
		if _, ok := model.PlaceOfServiceByCode(yc.DefaultPlaceOfService); !ok {
			return nil, fmt.Errorf("unknown default place of service %q in config", yc.DefaultPlaceOfService)
		}
		ref.DefaultPlaceOfService = yc.DefaultPlaceOfService
	}

	return ref, nil
}

// ValidateFile checks the batch/plan input file.
func (c *Config) ValidateFile() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks fields needed for database-backed commands.
func (c *Config) ValidateWithDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or CLAIMGEN_DB_URL is required")
	}
	return nil
}

// ValidateGenerate checks fields needed for single-charge generation.
func (c *Config) ValidateGenerate() error {
	if err := c.ValidateWithDSN(); err != nil {
		return err
	}
	if c.ChargeID <= 0 {
		return fmt.Errorf("--charge-id is required")
	}
	return nil
}
