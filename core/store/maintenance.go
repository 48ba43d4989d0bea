package store

import (
	"context"
	"database/sql"
	"fmt"
)

type TableCounts struct {
	Codes         int64
	Neighborhoods int64
	Incidents     int64
}

// Optimize refreshes planner statistics for the filter indexes.
func Optimize(ctx context.Context, db *sql.DB) error {
	stmt := `PRAGMA optimize`
	if DialectOf(db) == DialectPostgres {
		stmt = `ANALYZE Incidents`
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	return nil
}

func CountRows(ctx context.Context, db *sql.DB) (TableCounts, error) {
	var c TableCounts
	targets := []struct {
		query string
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM Codes`, &c.Codes},
		{`SELECT COUNT(*) FROM Neighborhoods`, &c.Neighborhoods},
		{`SELECT COUNT(*) FROM Incidents`, &c.Incidents},
	}
	for _, t := range targets {
		if err := db.QueryRowContext(ctx, t.query).Scan(t.dst); err != nil {
			return TableCounts{}, fmt.Errorf("count: %w", err)
		}
	}
	return c, nil
}
