package core

import "context"

// SourceRow is one record of the source table. Name duplicates field A and
// labels the generated document.
type SourceRow struct {
	Name   string
	Fields [4]string
}

// RowFetcher loads the source table. The first record is a header.
type RowFetcher interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// ParseSourceRows skips the header record and keeps every record whose first
// field is non-empty. A whitespace-only name still counts. Missing trailing
// fields read as empty strings.
func ParseSourceRows(records [][]string) []SourceRow {
	var rows []SourceRow
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 || record[0] == "" {
			continue
		}
		var row SourceRow
		for j := 0; j < len(row.Fields) && j < len(record); j++ {
			row.Fields[j] = record[j]
		}
		row.Name = row.Fields[0]
		rows = append(rows, row)
	}
	return rows
}

// LoadSourceRows fetches the table and parses it into source rows.
func LoadSourceRows(ctx context.Context, fetcher RowFetcher) ([]SourceRow, error) {
	records, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	rows := ParseSourceRows(records)
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}
	return rows, nil
}
