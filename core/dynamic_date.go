package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dynamicDatePrefix = "$date:"

// ResolveMonth turns a month expression into a month number 1-12.
//
//	""                    the month of base
//	"1" .. "12"           that month
//	"$date:month:unit:n"  the month of base shifted by n units (day, month, year)
func ResolveMonth(expression string, base time.Time) (int, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return int(base.Month()), nil
	}
	if !strings.HasPrefix(expression, dynamicDatePrefix) {
		month, err := strconv.Atoi(expression)
		if err != nil || month < 1 || month > 12 {
			return 0, fmt.Errorf("invalid month %q: want 1-12", expression)
		}
		return month, nil
	}
	t, format, err := shiftDate(expression, base)
	if err != nil {
		return 0, err
	}
	if format != "month" {
		return 0, fmt.Errorf("dynamic month must use the month format: %s", expression)
	}
	return int(t.Month()), nil
}

// shiftDate parses "$date:format:unit:offset" and applies the offset to base.
func shiftDate(expression string, base time.Time) (time.Time, string, error) {
	parts := strings.Split(expression, ":")
	if len(parts) < 4 {
		return time.Time{}, "", fmt.Errorf("invalid dynamic date format: %s", expression)
	}

	format := parts[1]
	unit := parts[2]
	offset, err := strconv.Atoi(parts[3])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid offset in dynamic date: %s", expression)
	}

	// Shift from the first of the month so month arithmetic never overflows
	// into the next month (Jan 31 + 1 month is February, not March).
	target := base
	switch unit {
	case "day":
		target = target.AddDate(0, 0, offset)
	case "month":
		target = time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location()).AddDate(0, offset, 0)
	case "year":
		target = time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location()).AddDate(offset, 0, 0)
	default:
		return time.Time{}, "", fmt.Errorf("unsupported unit in dynamic date: %s", unit)
	}
	return target, format, nil
}
