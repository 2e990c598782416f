package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSettingsHandlers(t *testing.T) {
	server := newTestServer(t)
	adminToken := loginToken(t, server, "admin@example.com")
	userToken := loginToken(t, server, "user@example.com")

	t.Run("forbidden_for_users", func(t *testing.T) {
		w := doJSON(t, server, "GET", "/api/admin/settings", userToken, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("get_defaults", func(t *testing.T) {
		w := doJSON(t, server, "GET", "/api/admin/settings", adminToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			Settings settingsPayload `json:"settings"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if !resp.Settings.UpdateLastPrices || !resp.Settings.SendAlertViaTelegram || !resp.Settings.SendAlertViaEmail {
			t.Errorf("defaults should enable everything: %+v", resp.Settings)
		}
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(t, server, "PUT", "/api/admin/settings", adminToken, settingsPayload{
			UpdateLastPrices:     true,
			SendAlertViaTelegram: false,
			SendAlertViaEmail:    true,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		w = doJSON(t, server, "GET", "/api/admin/settings", adminToken, nil)
		var resp struct {
			Settings settingsPayload `json:"settings"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Settings.SendAlertViaTelegram {
			t.Error("telegram channel should stay disabled after update")
		}
	})
}

func TestJobTriggerHandlers(t *testing.T) {
	server := newTestServer(t)
	adminToken := loginToken(t, server, "admin@example.com")
	userToken := loginToken(t, server, "user@example.com")

	t.Run("forbidden_for_users", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/admin/jobs/refresh-prices", userToken, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	// 尚無追蹤交易對與警報,兩個工作都應直接完成
	t.Run("refresh_prices", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/admin/jobs/refresh-prices", adminToken, nil)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("dispatch_alerts", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/admin/jobs/dispatch-alerts", adminToken, nil)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d %s", w.Code, w.Body.String())
		}
	})
}
