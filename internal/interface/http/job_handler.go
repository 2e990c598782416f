package httpapi

import "net/http"

// 管理端可手動觸發背景工作,與排程執行走同一條路徑。

func (s *Server) handleRefreshPrices(w http.ResponseWriter, r *http.Request) {
	if err := s.refreshUC.Execute(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"job":     "refresh-prices",
	})
}

func (s *Server) handleDispatchAlerts(w http.ResponseWriter, r *http.Request) {
	if err := s.dispatch.Run(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"job":     "dispatch-alerts",
	})
}
