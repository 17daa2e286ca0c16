package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/sdeshpande/CivicDesk/internal/client/session"
	"github.com/sdeshpande/CivicDesk/internal/models"
	"go.uber.org/zap"
)

// Authenticator validates credentials against the backend and, on
// success, persists the session and mutates the role context. A failed
// sign-in leaves both untouched.
type Authenticator struct {
	Client *Client
	Store  *session.Store
	Roles  *session.RoleContext
}

// loginRequest is the JSON body of the login endpoint. The office flags
// are the role hint: exactly one is set for an office sign-in, neither
// for an admin.
type loginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FrontOffice int    `json:"front_office"`
	BackOffice  int    `json:"back_office"`
}

// loginResponse is the backend's answer. AdminID and Office are present
// on success; Message carries the user-facing failure reason otherwise.
type loginResponse struct {
	AdminID json.Number `json:"admin_ID"`
	Office  string      `json:"office"`
	Message string      `json:"message"`
}

// roleFromOffice maps the backend's office field onto a Role. Unknown
// values fall back to the hint the caller signed in with.
func roleFromOffice(office string, hint models.Role) models.Role {
	switch office {
	case "front":
		return models.RoleFrontOffice
	case "back":
		return models.RoleBackOffice
	case "admin":
		return models.RoleAdmin
	}
	return hint
}

// SignIn sends the credentials plus a role hint to the backend. On
// success the session is persisted first, then the role context is
// updated; subscribers therefore never observe a role with no matching
// persisted session. The returned session tells the caller which landing
// destination to reset navigation to.
func (a *Authenticator) SignIn(ctx context.Context, username, password string, hint models.Role) (*models.Session, error) {
	body := loginRequest{Username: username, Password: password}
	if hint == models.RoleFrontOffice {
		body.FrontOffice = 1
	}
	if hint == models.RoleBackOffice {
		body.BackOffice = 1
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, serverErr("", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.Client.BaseURL+pathLogin, bytes.NewReader(buf))
	if err != nil {
		return nil, serverErr("", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.do(req)
	if err != nil {
		return nil, networkErr(err)
	}
	defer resp.Body.Close()

	var decoded loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		// An unreadable body is indistinguishable from no response.
		return nil, networkErr(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, authErr(decoded.Message)
	}
	if decoded.AdminID.String() == "" {
		// 2xx without the expected fields; surface like a network
		// failure rather than crashing on a half-formed session.
		return nil, networkErr(nil)
	}

	sess := models.Session{
		Role:       roleFromOffice(decoded.Office, hint),
		OfficeID:   decoded.Office,
		IdentityID: decoded.AdminID.String(),
	}

	// Persist before mutating the in-memory role. A failed write is
	// best-effort: the worst case on restart is a guest role, never an
	// elevated role without a session.
	if err := a.Store.SaveSession(sess); err != nil {
		a.Client.Log.Warn("failed to persist session", zap.Error(err))
	}
	a.Roles.SetRole(sess.Role)

	return &sess, nil
}
