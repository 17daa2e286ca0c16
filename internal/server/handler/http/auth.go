package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sdeshpande/CivicDesk/internal/models"
	"github.com/sdeshpande/CivicDesk/internal/service"
	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Authenticate verifies the credentials and office hint, returning
	// the matching account or service.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string, frontOffice, backOffice bool) (*models.OfficeUser, error)
}

// AuthHandler handles office sign-in requests.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log records failures; credentials are never logged.
	Log *zap.Logger
}

// loginRequest represents the JSON payload of the login endpoint.
type loginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FrontOffice int    `json:"front_office"`
	BackOffice  int    `json:"back_office"`
}

// Login handles POST /complaintlogin/ requests. On success it responds
// with the identity id and office; rejected credentials get a 401 with a
// user-facing message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.AuthService.Authenticate(r.Context(),
		req.Username, req.Password, req.FrontOffice == 1, req.BackOffice == 1)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.Log.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"admin_ID": user.AdminID,
		"office":   user.Office,
	})
}
