package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Validator validates the configuration objects.
type Validator struct {
	Provider Provider
}

// NewValidator creates a new Validator.
func NewValidator(provider Provider) *Validator {
	return &Validator{Provider: provider}
}

// ValidateJob validates a JobConfig after defaults have been applied.
func (v *Validator) ValidateJob(job *JobConfig) error {
	if job.Template == "" {
		return fmt.Errorf("job template is required")
	}
	if job.Source == "" {
		return fmt.Errorf("job source is required")
	}
	if v.Provider != nil {
		if _, err := v.Provider.GetSourceConfig(job.Source); err != nil {
			return fmt.Errorf("job references unknown source '%s'", job.Source)
		}
	}
	if err := validateMonth(job.Month); err != nil {
		return err
	}

	m := job.ColumnMapping
	for i, col := range []string{m.A, m.B, m.C, m.D} {
		if err := validateColumn(col); err != nil {
			return fmt.Errorf("column mapping %c: %w", 'A'+i, err)
		}
	}

	if job.MonthRule == nil || job.MonthRule.Token == "" {
		return fmt.Errorf("month rule token is required")
	}
	if len(job.MonthRule.Columns) == 0 {
		return fmt.Errorf("month rule needs at least one column")
	}
	for i, col := range job.MonthRule.Columns {
		if err := validateColumn(col); err != nil {
			return fmt.Errorf("month rule column %d: %w", i, err)
		}
	}

	return v.ValidateOutput(&job.Output)
}

// ValidateOutput validates the OutputConfig.
func (v *Validator) ValidateOutput(out *OutputConfig) error {
	if out.Dir == "" {
		return fmt.Errorf("output directory is required")
	}
	if out.MergedName == "" {
		return fmt.Errorf("merged file name is required")
	}
	// Every row needs a distinct file name.
	if !strings.Contains(out.NamePattern, "${name}") && !strings.Contains(out.NamePattern, "${index}") {
		return fmt.Errorf("name pattern '%s' must contain ${name} or ${index}", out.NamePattern)
	}
	return nil
}

// ValidateSource validates the SourceConfig.
func (v *Validator) ValidateSource(src *SourceConfig) error {
	if src.Name == "" {
		return fmt.Errorf("source name is required")
	}
	switch src.Type {
	case SourceXlsx, SourceCSV:
		if src.Path == "" {
			return fmt.Errorf("source '%s' path is required", src.Name)
		}
	case SourceMySQL, SourcePostgres:
		if src.DSN == "" {
			return fmt.Errorf("source '%s' DSN is required", src.Name)
		}
		if src.Table == "" && src.Query == "" {
			return fmt.Errorf("source '%s' requires a table or a query", src.Name)
		}
	case SourceSQLite:
		if src.Path == "" {
			return fmt.Errorf("source '%s' path is required", src.Name)
		}
		if src.Table == "" && src.Query == "" {
			return fmt.Errorf("source '%s' requires a table or a query", src.Name)
		}
	case SourceDynamoDB:
		if src.Table == "" {
			return fmt.Errorf("source '%s' table is required", src.Name)
		}
		if len(src.Columns) == 0 {
			return fmt.Errorf("source '%s' requires columns", src.Name)
		}
	case "":
		return fmt.Errorf("source '%s' type is required", src.Name)
	default:
		return fmt.Errorf("source '%s' has invalid type '%s'", src.Name, src.Type)
	}
	return nil
}

func validateColumn(col string) error {
	if col == "" {
		return fmt.Errorf("column is required")
	}
	if _, err := excelize.ColumnNameToNumber(col); err != nil {
		return fmt.Errorf("invalid column '%s'", col)
	}
	return nil
}

// validateMonth checks the shape of a month expression; dynamic
// expressions are resolved at run time.
func validateMonth(month string) error {
	month = strings.TrimSpace(month)
	if month == "" || strings.HasPrefix(month, "$date:") {
		return nil
	}
	n, err := strconv.Atoi(month)
	if err != nil || n < 1 || n > 12 {
		return fmt.Errorf("month '%s' must be between 1 and 12", month)
	}
	return nil
}
