package httpapi

import (
	"net/http"
	"strings"
	"time"

	authApp "price-alerts/internal/application/auth"
	marketDomain "price-alerts/internal/domain/market"
)

type symbolPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LastPrice string `json:"last_price"`
	UpdatedAt string `json:"updated_at"`
}

func toSymbolPayload(s marketDomain.Symbol) symbolPayload {
	return symbolPayload{
		ID:        s.ID,
		Name:      s.Name,
		LastPrice: s.LastPrice.String(),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

type symbolRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		symbols, err := s.symbols.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, "list symbols failed")
			return
		}
		payload := make([]symbolPayload, 0, len(symbols))
		for _, sym := range symbols {
			payload = append(payload, toSymbolPayload(sym))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"symbols": payload,
		})
	case http.MethodPost:
		if !s.authz.HasPermission(currentRole(r), authApp.PermSymbolManage) {
			writeError(w, http.StatusForbidden, errCodeForbidden, "insufficient permission")
			return
		}
		var req symbolRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		sym := marketDomain.Symbol{Name: strings.ToUpper(strings.TrimSpace(req.Name))}
		if err := sym.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		created, err := s.symbols.Create(r.Context(), sym)
		if err != nil {
			writeError(w, http.StatusConflict, errCodeConflict, "symbol already exists")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"symbol":  toSymbolPayload(created),
		})
	}
}

func (s *Server) handleSymbolItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/symbols/")
	if !ok {
		writeError(w, http.StatusNotFound, errCodeNotFound, "symbol not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		sym, err := s.symbols.FindByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, errCodeNotFound, "symbol not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"symbol":  toSymbolPayload(sym),
		})
	case http.MethodDelete:
		if !s.authz.HasPermission(currentRole(r), authApp.PermSymbolManage) {
			writeError(w, http.StatusForbidden, errCodeForbidden, "insufficient permission")
			return
		}
		if err := s.symbols.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, errCodeNotFound, "symbol not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
