package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Result is a tabular query result: named columns with rows of display
// values aligned by position.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the result holds no rows.
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// QueryError wraps a database error from executing caller-supplied SQL.
// The message is the driver's, verbatim, so the display layer can surface
// it unchanged.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Query executes arbitrary SQL text and returns its result as a table.
// Malformed SQL or references to missing tables/columns yield a
// *QueryError. This is a trusted-input-only capability: there is no
// sandboxing, rewriting, or injection defense on this path.
func (s *Store) Query(ctx context.Context, query string) (*Result, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	result := &Result{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	return result, nil
}

// formatValue renders a scanned database value for display.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}
