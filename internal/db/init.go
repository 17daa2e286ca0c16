package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS office_users (
    username TEXT PRIMARY KEY,
    password_digest TEXT NOT NULL,
    admin_id TEXT NOT NULL,
    office TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS complaints (
    c_id SERIAL PRIMARY KEY,
    c_name TEXT NOT NULL,
    c_contactno TEXT NOT NULL DEFAULT '',
    c_area TEXT NOT NULL,
    complaint_for TEXT NOT NULL,
    complaint TEXT NOT NULL,
    c_description TEXT NOT NULL DEFAULT '',
    c_time DATE NOT NULL,
    c_image TEXT NOT NULL DEFAULT '',
    c_status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
