package core

import (
	"time"

	"github.com/9003755/excel-tool/config"
)

// Options configures one batch run. It is constant for the whole batch.
type Options struct {
	Month       int
	Mapping     ColumnMapping
	MonthRule   MonthRule
	NamePattern string
	MergedName  string
}

// DefaultOptions uses the month of now and the default mapping, rule and names.
func DefaultOptions(now time.Time) Options {
	return Options{
		Month:       int(now.Month()),
		Mapping:     DefaultColumnMapping(),
		MonthRule:   DefaultMonthRule(),
		NamePattern: DefaultNamePattern,
		MergedName:  DefaultMergedName,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions(time.Now())
	if o.Month == 0 {
		o.Month = def.Month
	}
	if o.Mapping == (ColumnMapping{}) {
		o.Mapping = def.Mapping
	}
	if o.MonthRule.Token == "" && len(o.MonthRule.Columns) == 0 {
		o.MonthRule = def.MonthRule
	}
	if o.NamePattern == "" {
		o.NamePattern = def.NamePattern
	}
	if o.MergedName == "" {
		o.MergedName = def.MergedName
	}
	return o
}

// NewRunOptions converts a validated job configuration into run options,
// resolving the month expression against now.
func NewRunOptions(job *config.JobConfig, now time.Time) (Options, error) {
	month, err := ResolveMonth(job.Month, now)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Month: month,
		Mapping: ColumnMapping{
			A: job.ColumnMapping.A,
			B: job.ColumnMapping.B,
			C: job.ColumnMapping.C,
			D: job.ColumnMapping.D,
		},
		NamePattern: job.Output.NamePattern,
		MergedName:  job.Output.MergedName,
	}
	if job.MonthRule != nil {
		opts.MonthRule = MonthRule{
			Token:   job.MonthRule.Token,
			Columns: append([]string(nil), job.MonthRule.Columns...),
		}
	}
	return opts.withDefaults(), nil
}
