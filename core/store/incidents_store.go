package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"stpaul-crime/core/crime"
)

var (
	ErrDuplicateCase = errors.New("case number already exists")
	ErrNotFound      = errors.New("case number does not exist")
)

const pgUniqueViolation = "23505"

type IncidentsStore interface {
	ListIncidents(ctx context.Context, filter crime.FilterCriteria) ([]crime.Incident, error)
	Exists(ctx context.Context, caseNumber string) (bool, error)
	Insert(ctx context.Context, incident crime.Incident) error
	Remove(ctx context.Context, caseNumber string) error
}

type incidentsStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewIncidentsStore(db *sql.DB) IncidentsStore {
	return &incidentsStore{db: db, dialect: DialectOf(db)}
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *incidentsStore) ListIncidents(ctx context.Context, filter crime.FilterCriteria) ([]crime.Incident, error) {
	q := crime.BuildIncidentsQuery(filter)
	return selectAll(ctx, s.db, s.dialect, q, func(rows *sql.Rows) (crime.Incident, error) {
		var inc crime.Incident
		err := rows.Scan(&inc.CaseNumber, &inc.Date, &inc.Time, &inc.Code, &inc.Incident, &inc.PoliceGrid, &inc.NeighborhoodNumber, &inc.Block)
		return inc, err
	})
}

func (s *incidentsStore) Exists(ctx context.Context, caseNumber string) (bool, error) {
	return s.exists(ctx, s.db, caseNumber)
}

func (s *incidentsStore) exists(ctx context.Context, q rowQuerier, caseNumber string) (bool, error) {
	var found string
	err := q.QueryRowContext(ctx, rebind(s.dialect, `SELECT case_number FROM Incidents WHERE case_number=?`), caseNumber).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check case number: %w", err)
	}
	return true, nil
}

// Insert checks for an existing case number and inserts inside one
// transaction. A concurrent insert that slips past the check is caught by the
// unique constraint and reported as ErrDuplicateCase as well.
func (s *incidentsStore) Insert(ctx context.Context, incident crime.Incident) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	exists, err := s.exists(ctx, tx, incident.CaseNumber)
	if err != nil {
		tx.Rollback()
		return err
	}
	if exists {
		tx.Rollback()
		return ErrDuplicateCase
	}
	_, err = tx.ExecContext(ctx, rebind(s.dialect, `
		INSERT INTO Incidents(case_number, date_time, code, incident, police_grid, neighborhood_number, block)
		VALUES(?, ?, ?, ?, ?, ?, ?)`),
		incident.CaseNumber, incident.DateTime(), incident.Code, incident.Incident,
		incident.PoliceGrid, incident.NeighborhoodNumber, incident.Block)
	if err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return ErrDuplicateCase
		}
		return fmt.Errorf("insert incident: %w", err)
	}
	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCase
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Remove deletes exactly one incident. A delete that races another delete
// affects no rows and reports ErrNotFound.
func (s *incidentsStore) Remove(ctx context.Context, caseNumber string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	exists, err := s.exists(ctx, tx, caseNumber)
	if err != nil {
		tx.Rollback()
		return err
	}
	if !exists {
		tx.Rollback()
		return ErrNotFound
	}
	res, err := tx.ExecContext(ctx, rebind(s.dialect, `DELETE FROM Incidents WHERE case_number=?`), caseNumber)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("delete incident: %w", err)
	}
	if err := requireAffected(res); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
