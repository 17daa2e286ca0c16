// Package repository provides PostgreSQL persistence for the complaint
// service.
package repository

import (
	"context"
	"database/sql"

	"github.com/sdeshpande/CivicDesk/internal/models"
)

// PostgresAuthRepository looks up office login accounts in PostgreSQL.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the
// given database connection.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// FindUser fetches the office account for the given username. It returns
// sql.ErrNoRows when no such account exists.
func (r *PostgresAuthRepository) FindUser(ctx context.Context, username string) (*models.OfficeUser, error) {
	var u models.OfficeUser
	err := r.DB.QueryRowContext(ctx, `
		SELECT username, password_digest, admin_id, office
		  FROM office_users WHERE username = $1
	`, username).Scan(&u.Username, &u.PasswordDigest, &u.AdminID, &u.Office)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
