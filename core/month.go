package core

import (
	"strconv"
	"strings"

	"github.com/9003755/excel-tool/config"
)

// DefaultMonthToken is the placeholder the templates use for the month: March
// written between date separators.
const DefaultMonthToken = config.DefaultMonthToken

// MonthRule selects the literal token to rewrite and the columns to scan.
type MonthRule struct {
	Token   string   `json:"token"   yaml:"token"`
	Columns []string `json:"columns" yaml:"columns"`
}

// DefaultMonthRule scans J, M, N, O and P for "/3/".
func DefaultMonthRule() MonthRule {
	return MonthRule{
		Token:   DefaultMonthToken,
		Columns: append([]string(nil), config.DefaultMonthColumns...),
	}
}

// Substitution records one rewritten cell.
type Substitution struct {
	Address Address
	Before  string
	After   string
}

// SubstituteMonth rewrites every occurrence of rule.Token in the display text of
// the rule's columns with "/{month}/". Matching is a literal substring test, not a
// date parse: "2024/03/15" does not match "/3/". A rewritten cell becomes a string
// cell so the literal survives serialization; other attributes are left alone.
func SubstituteMonth(sheet *Sheet, month int, rule MonthRule, rng Range) []Substitution {
	if sheet == nil || rule.Token == "" {
		return nil
	}
	replacement := "/" + strconv.Itoa(month) + "/"

	var subs []Substitution
	for _, column := range rule.Columns {
		col, err := ColumnIndex(column)
		if err != nil {
			continue
		}
		for row := 1; row <= rng.End.Row; row++ {
			addr := Address{Col: col, Row: row}
			cell := sheet.Cell(addr)
			if cell == nil || (cell.Value == "" && cell.Text == "") {
				continue
			}
			text := cell.DisplayText()
			if !strings.Contains(text, rule.Token) {
				continue
			}
			after := strings.ReplaceAll(text, rule.Token, replacement)
			cell.Value = after
			cell.Type = TypeString
			subs = append(subs, Substitution{Address: addr, Before: text, After: after})
		}
	}
	return subs
}
