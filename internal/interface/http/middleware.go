package httpapi

import (
	"context"
	"net/http"
	"strings"

	"price-alerts/internal/application/auth"
	authDomain "price-alerts/internal/domain/auth"
)

type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"
	ctxKeyRole   ctxKey = "role"
)

const (
	errCodeBadRequest         = "BAD_REQUEST"
	errCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	errCodeUnauthorized       = "AUTH_UNAUTHORIZED"
	errCodeForbidden          = "AUTH_FORBIDDEN"
	errCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	errCodeNotFound           = "NOT_FOUND"
	errCodeConflict           = "CONFLICT"
	errCodeInternal           = "INTERNAL_ERROR"
)

func (s *Server) wrapGet(h http.HandlerFunc) http.Handler {
	return s.wrapMethods(h, http.MethodGet)
}

func (s *Server) wrapPost(h http.HandlerFunc) http.Handler {
	return s.wrapMethods(h, http.MethodPost)
}

func (s *Server) wrapMethods(h http.HandlerFunc, methods ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				h(w, r)
				return
			}
		}
		writeError(w, http.StatusMethodNotAllowed, errCodeMethodNotAllowed, "method not allowed")
	})
}

// requireAuth 驗證 Bearer token，並檢查角色是否具備指定權限。
func (s *Server) requireAuth(perm auth.Permission, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, errCodeUnauthorized, "missing bearer token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := s.tokenSvc.ParseAccessToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, errCodeUnauthorized, "invalid token")
			return
		}

		role := authDomain.Role(claims.Role)
		if perm != "" && !s.authz.HasPermission(role, perm) {
			writeError(w, http.StatusForbidden, errCodeForbidden, "insufficient permission")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxKeyRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUserID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKeyUserID).(string)
	return id
}

func currentRole(r *http.Request) authDomain.Role {
	role, _ := r.Context().Value(ctxKeyRole).(authDomain.Role)
	return role
}
