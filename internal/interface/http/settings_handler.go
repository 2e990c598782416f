package httpapi

import (
	"net/http"

	settingsDomain "price-alerts/internal/domain/settings"
)

type settingsPayload struct {
	UpdateLastPrices     bool `json:"update_last_prices"`
	SendAlertViaTelegram bool `json:"send_alert_via_telegram"`
	SendAlertViaEmail    bool `json:"send_alert_via_email"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := s.settings.Get(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, "load settings failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"settings": settingsPayload{
				UpdateLastPrices:     cfg.UpdateLastPrices,
				SendAlertViaTelegram: cfg.SendAlertViaTelegram,
				SendAlertViaEmail:    cfg.SendAlertViaEmail,
			},
		})
	case http.MethodPut:
		var req settingsPayload
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		cfg := settingsDomain.Core{
			UpdateLastPrices:     req.UpdateLastPrices,
			SendAlertViaTelegram: req.SendAlertViaTelegram,
			SendAlertViaEmail:    req.SendAlertViaEmail,
		}
		if err := s.settings.Update(r.Context(), cfg); err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, "update settings failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"settings": req,
		})
	}
}
