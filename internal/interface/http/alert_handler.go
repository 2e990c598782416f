package httpapi

import (
	"net/http"
	"strings"
	"time"

	alertDomain "price-alerts/internal/domain/alert"

	"github.com/shopspring/decimal"
)

type alertPayload struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Price     string `json:"price"`
	Condition string `json:"condition"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toAlertPayload(a alertDomain.Alert) alertPayload {
	return alertPayload{
		ID:        a.ID,
		Symbol:    a.Symbol,
		Price:     a.Price.String(),
		Condition: string(a.Condition),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

type alertRequest struct {
	Symbol    string `json:"symbol"`
	Price     string `json:"price"`
	Condition string `json:"condition"`
	IsActive  *bool  `json:"is_active"`
}

func (req alertRequest) toAlert(userID string) (alertDomain.Alert, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return alertDomain.Alert{}, err
	}
	a := alertDomain.Alert{
		UserID:    userID,
		Symbol:    strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Price:     price,
		Condition: alertDomain.Condition(strings.ToLower(strings.TrimSpace(req.Condition))),
		IsActive:  true,
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	return a, a.Validate()
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAlertList(w, r)
	case http.MethodPost:
		s.handleAlertCreate(w, r)
	}
}

func (s *Server) handleAlertList(w http.ResponseWriter, r *http.Request) {
	filter := alertDomain.ListFilter{}
	if raw := r.URL.Query().Get("symbols"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
				filter.Symbols = append(filter.Symbols, sym)
			}
		}
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	alerts, err := s.alerts.ListByUser(r.Context(), currentUserID(r), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal, "list alerts failed")
		return
	}

	payload := make([]alertPayload, 0, len(alerts))
	for _, a := range alerts {
		payload = append(payload, toAlertPayload(a))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"alerts":  payload,
	})
}

func (s *Server) handleAlertCreate(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}

	a, err := req.toAlert(currentUserID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}
	s.ensureSymbol(r.Context(), a.Symbol)

	created, err := s.alerts.Create(r.Context(), a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal, "create alert failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"alert":   toAlertPayload(created),
	})
}

func (s *Server) handleAlertItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/alerts/")
	if !ok {
		writeError(w, http.StatusNotFound, errCodeNotFound, "alert not found")
		return
	}

	existing, err := s.alerts.FindByID(r.Context(), id)
	if err != nil || existing.UserID != currentUserID(r) {
		// 不洩漏其他使用者的警報是否存在
		writeError(w, http.StatusNotFound, errCodeNotFound, "alert not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"alert":   toAlertPayload(existing),
		})
	case http.MethodPut:
		var req alertRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		updated, err := req.toAlert(existing.UserID)
		if err != nil {
			writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		s.ensureSymbol(r.Context(), updated.Symbol)
		if err := s.alerts.Update(r.Context(), updated); err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, "update alert failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"alert":   toAlertPayload(updated),
		})
	case http.MethodDelete:
		if err := s.alerts.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, "delete alert failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
