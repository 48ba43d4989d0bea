package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"stpaul-crime/config"
	"stpaul-crime/core/crime"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.AppConfig{DBDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "crime.db")}
	db, err := NewDB(cfg, nil)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := ApplyMigrations(context.Background(), db, nil); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return db
}

func seedCodes(t *testing.T, db *sql.DB, codes ...crime.Code) {
	t.Helper()
	for _, c := range codes {
		if _, err := db.Exec(`INSERT INTO Codes(code, incident_type) VALUES(?, ?)`, c.Code, c.IncidentType); err != nil {
			t.Fatalf("seed code: %v", err)
		}
	}
}

func seedIncidents(t *testing.T, s IncidentsStore, incidents ...crime.Incident) {
	t.Helper()
	for _, inc := range incidents {
		if err := s.Insert(context.Background(), inc); err != nil {
			t.Fatalf("seed incident %s: %v", inc.CaseNumber, err)
		}
	}
}
