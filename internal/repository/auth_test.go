package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupAuthMock(t *testing.T) (*PostgresAuthRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresAuthRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

const findUserQuery = `
		SELECT username, password_digest, admin_id, office
		  FROM office_users WHERE username = $1
	`

func TestFindUser_Found(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(findUserQuery)).
		WithArgs("kiran").
		WillReturnRows(sqlmock.NewRows(
			[]string{"username", "password_digest", "admin_id", "office"}).
			AddRow("kiran", "digest", "42", "front"))

	user, err := repo.FindUser(context.Background(), "kiran")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.AdminID != "42" || user.Office != "front" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindUser_NotFound(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(findUserQuery)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUser(context.Background(), "ghost")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindUser_QueryError(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(findUserQuery)).
		WithArgs("kiran").
		WillReturnError(errors.New("query failed"))

	_, err := repo.FindUser(context.Background(), "kiran")
	if err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
