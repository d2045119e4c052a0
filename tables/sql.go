package tables

import (
	"context"
	"database/sql"
	"go-ml.dev/pkg/zorros"
)

/*
Query runs the query on the database and collects the result into a table.
SQL NULL values become missing cells.
*/
func Query(ctx context.Context, db *sql.DB, query string, args ...interface{}) (*Table, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to query table: %v", err.Error())
	}
	defer rows.Close()
	return FromRows(rows)
}

/*
FromRows collects all remaining rows into a table, columns are named after the result set.
Byte slices are converted into strings.
*/
func FromRows(rows *sql.Rows) (*Table, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	cells := make([][]interface{}, len(names))
	for rows.Next() {
		row := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, zorros.Wrapf(err, "failed to scan row: %v", err.Error())
		}
		for i, v := range row {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cells[i] = append(cells[i], v)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	t := NewEmpty()
	for i, n := range names {
		c := &Column{cells[i]}
		if c.values == nil {
			c.values = []interface{}{}
		}
		t = t.with(c, n)
	}
	return t, nil
}
