package core

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLRowFetcher implements RowFetcher using a generic SQL database (MySQL, PostgreSQL, SQLite).
// The header record is the result's column names.
type SQLRowFetcher struct {
	DB         *sql.DB
	DriverName string // "mysql", "postgres" or "sqlite3"
	Table      string
	Query      string // overrides Table when set
}

// NewSQLRowFetcher creates a new fetcher.
func NewSQLRowFetcher(db *sql.DB, driverName, table, query string) *SQLRowFetcher {
	return &SQLRowFetcher{
		DB:         db,
		DriverName: driverName,
		Table:      table,
		Query:      query,
	}
}

func (f *SQLRowFetcher) statement() (string, error) {
	if f.Query != "" {
		return f.Query, nil
	}
	if f.Table == "" {
		return "", fmt.Errorf("sql source needs a table or a query")
	}
	return fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(f.DriverName, f.Table)), nil
}

// quoteIdentifier quotes each dot-separated part of a table name in the
// driver's dialect.
func quoteIdentifier(driver, name string) string {
	quote := `"`
	if driver == "mysql" {
		quote = "`"
	}
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = quote + strings.ReplaceAll(part, quote, quote+quote) + quote
	}
	return strings.Join(parts, ".")
}

// Fetch runs the query and renders every value as text. NULL becomes "".
func (f *SQLRowFetcher) Fetch(ctx context.Context) ([][]string, error) {
	query, err := f.statement()
	if err != nil {
		return nil, err
	}

	rows, err := f.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", f.DriverName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	records := [][]string{columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		record := make([]string, len(columns))
		for i, val := range values {
			switch v := val.(type) {
			case nil:
			case []byte:
				// MySQL driver often returns strings as []byte
				record[i] = string(v)
			default:
				record[i] = fmt.Sprintf("%v", v)
			}
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}
