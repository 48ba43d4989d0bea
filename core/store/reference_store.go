package store

import (
	"context"
	"database/sql"
	"fmt"

	"stpaul-crime/core/crime"
)

type CodesStore interface {
	ListCodes(ctx context.Context, filter crime.FilterCriteria) ([]crime.Code, error)
}

type NeighborhoodsStore interface {
	ListNeighborhoods(ctx context.Context, filter crime.FilterCriteria) ([]crime.Neighborhood, error)
}

type codesStore struct {
	db      *sql.DB
	dialect Dialect
}

type neighborhoodsStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewCodesStore(db *sql.DB) CodesStore {
	return &codesStore{db: db, dialect: DialectOf(db)}
}

func NewNeighborhoodsStore(db *sql.DB) NeighborhoodsStore {
	return &neighborhoodsStore{db: db, dialect: DialectOf(db)}
}

func (s *codesStore) ListCodes(ctx context.Context, filter crime.FilterCriteria) ([]crime.Code, error) {
	q := crime.BuildCodesQuery(filter)
	return selectAll(ctx, s.db, s.dialect, q, func(rows *sql.Rows) (crime.Code, error) {
		var c crime.Code
		err := rows.Scan(&c.Code, &c.IncidentType)
		return c, err
	})
}

func (s *neighborhoodsStore) ListNeighborhoods(ctx context.Context, filter crime.FilterCriteria) ([]crime.Neighborhood, error) {
	q := crime.BuildNeighborhoodsQuery(filter)
	return selectAll(ctx, s.db, s.dialect, q, func(rows *sql.Rows) (crime.Neighborhood, error) {
		var n crime.Neighborhood
		err := rows.Scan(&n.NeighborhoodNumber, &n.NeighborhoodName)
		return n, err
	})
}

// selectAll runs q and scans every row. The result is never nil so it
// encodes as [] when empty.
func selectAll[T any](ctx context.Context, db *sql.DB, d Dialect, q crime.Query, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, rebind(d, q.SQL), q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	res := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, item)
	}
	return res, rows.Err()
}
