package settings

// Core 為全域工作設定（單例），每次任務執行前讀取一次。
// 三個開關彼此獨立，可在不重啟服務的情況下切換。
type Core struct {
	UpdateLastPrices     bool
	SendAlertViaTelegram bool
	SendAlertViaEmail    bool
}

// Default 回傳預設全開的設定，與初始化資料一致。
func Default() Core {
	return Core{
		UpdateLastPrices:     true,
		SendAlertViaTelegram: true,
		SendAlertViaEmail:    true,
	}
}

// AnyChannelEnabled 回報是否有任何通知通道可用。
func (c Core) AnyChannelEnabled() bool {
	return c.SendAlertViaTelegram || c.SendAlertViaEmail
}
