package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/capacitymarket/capacity-checker/internal/auth"
)

// loginRequest is the JSON body for POST /api/v1/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin verifies the shared admin credential and issues a JWT.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Auth.Secret == "" {
		writeUnauthorized(w, "admin authentication is not configured")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Auth.Username)) == 1
	passwordOK, err := auth.VerifyPassword(req.Password, s.cfg.Auth.Password)
	if err != nil {
		s.logger.Error("password verification failed", "error", err)
		writeInternalError(w, "login failed")
		return
	}
	if !usernameOK || !passwordOK {
		s.logger.Warn("failed login attempt", "username", req.Username)
		writeUnauthorized(w, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(req.Username, s.cfg.Auth.Secret, s.cfg.Auth.TokenTTL)
	if err != nil {
		s.logger.Error("token generation failed", "error", err)
		writeInternalError(w, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": s.cfg.Auth.TokenTTL * 60,
	})
}
