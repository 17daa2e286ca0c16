// Package service provides the business logic of the complaint service,
// delegating persistence to repositories.
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"

	"github.com/sdeshpande/CivicDesk/internal/models"
)

// ErrInvalidCredentials is returned when the username, password, or
// office hint does not match an account. The caller must not reveal
// which one failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// FindUser fetches the account for the given username, returning
	// sql.ErrNoRows when it does not exist.
	FindUser(ctx context.Context, username string) (*models.OfficeUser, error)
}

// AuthService validates office sign-ins.
type AuthService struct {
	repo AuthRepository
}

// NewAuthService constructs a new AuthService using the provided
// repository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// HashPassword returns the hex SHA-256 digest stored for a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// officeFromFlags maps the login request's office flags onto the office
// the caller claims to belong to. Neither flag set means admin.
func officeFromFlags(frontOffice, backOffice bool) string {
	switch {
	case frontOffice:
		return "front"
	case backOffice:
		return "back"
	default:
		return "admin"
	}
}

// Authenticate verifies the credentials and the office hint. On success
// it returns the account; every failure mode collapses into
// ErrInvalidCredentials except repository errors, which are returned
// as-is.
func (s *AuthService) Authenticate(ctx context.Context, username, password string, frontOffice, backOffice bool) (*models.OfficeUser, error) {
	user, err := s.repo.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	digest := HashPassword(password)
	if !hmac.Equal([]byte(digest), []byte(user.PasswordDigest)) {
		return nil, ErrInvalidCredentials
	}
	if user.Office != officeFromFlags(frontOffice, backOffice) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
