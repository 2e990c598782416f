package httpapi

import (
	"net/http"
	"time"

	authApp "price-alerts/internal/application/auth"
	authDomain "price-alerts/internal/domain/auth"
)

type userPayload struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	TelegramID string `json:"telegram_id,omitempty"`
	Role       string `json:"role"`
}

func toUserPayload(u authDomain.User) userPayload {
	return userPayload{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		TelegramID: u.TelegramID,
		Role:       string(u.Role),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	TelegramID string `json:"telegram_id"`
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}

	result, err := s.loginUC.Execute(r.Context(), authApp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, errCodeInvalidCredentials, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    toUserPayload(result.User),
		"token": tokenPayload{
			AccessToken: result.Token.AccessToken,
			ExpiresAt:   result.Token.AccessExpiry.Format(time.RFC3339),
		},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}

	result, err := s.registerUC.Execute(r.Context(), authApp.RegisterInput{
		Email:      req.Email,
		Name:       req.Name,
		Password:   req.Password,
		TelegramID: req.TelegramID,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    toUserPayload(result.User),
		"token": tokenPayload{
			AccessToken: result.Token.AccessToken,
			ExpiresAt:   result.Token.AccessExpiry.Format(time.RFC3339),
		},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.FindByID(r.Context(), currentUserID(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, errCodeUnauthorized, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    toUserPayload(user),
	})
}
