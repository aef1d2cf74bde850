package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Database wraps the sqlite connection shared by the repositories.
type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	if dbPath == "" {
		return nil, errors.New("database path is required")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Verify we can actually connect to the database
	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("ping failed: %w, close failed: %v", err, closeErr)
		}
		return nil, err
	}

	if err := createTables(db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("create tables failed: %w, close failed: %v", err, closeErr)
		}
		return nil, err
	}

	return &Database{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			is_custom INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS devices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id INTEGER NOT NULL REFERENCES clients(id),
			device_type TEXT NOT NULL,
			device_name TEXT,
			address TEXT,
			ulica TEXT,
			nr_domu TEXT,
			nr_lokalu TEXT,
			kod_pocztowy TEXT,
			miejscowosc TEXT,
			notes TEXT,
			installation_date TEXT,
			next_inspection_date TEXT,
			service_confirmed INTEGER NOT NULL DEFAULT 0,
			last_sms INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_devices_client ON devices(client_id);

		CREATE TABLE IF NOT EXISTS sms_log (
			id TEXT PRIMARY KEY,
			client_id INTEGER NOT NULL,
			device_id INTEGER,
			phone TEXT NOT NULL,
			mode TEXT NOT NULL,
			message TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			sent_at INTEGER NOT NULL
		)
	`)
	return err
}

// GetDB exposes the underlying connection for the repositories.
func (d *Database) GetDB() *sql.DB {
	return d.db
}

func (d *Database) Close() error {
	if d == nil {
		return errors.New("database is nil")
	}

	if d.db == nil {
		return errors.New("database already closed")
	}

	err := d.db.Close()
	d.db = nil
	return err
}
