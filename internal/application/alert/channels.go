package alert

import (
	"context"
	"log"

	"price-alerts/internal/domain/auth"
	"price-alerts/internal/domain/settings"
)

// ChatTransport 送出即時訊息到指定聊天室。
type ChatTransport interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// EmailTransport 寄出通知郵件。
type EmailTransport interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Channel 是單一通知通道。Send 回傳是否送達，傳輸錯誤一律轉為 false
// 並記 log，由引擎決定是否換下一個通道。
type Channel interface {
	Name() string
	Enabled(cfg settings.Core) bool
	Send(ctx context.Context, user auth.User, message string) bool
}

// TelegramChannel 透過聊天機器人通知，需要使用者已綁定 Telegram。
type TelegramChannel struct {
	client ChatTransport
}

// NewTelegramChannel 建立 Telegram 通道。
func NewTelegramChannel(client ChatTransport) *TelegramChannel {
	return &TelegramChannel{client: client}
}

// Name 回傳通道名稱。
func (c *TelegramChannel) Name() string { return "telegram" }

// Enabled 依全域設定判斷通道是否開啟。
func (c *TelegramChannel) Enabled(cfg settings.Core) bool { return cfg.SendAlertViaTelegram }

// Send 送出訊息。未綁定 Telegram 的使用者視為未送達。
func (c *TelegramChannel) Send(ctx context.Context, user auth.User, message string) bool {
	if !user.HasTelegram() {
		log.Printf("[Telegram] user=%s has no telegram id, skipping", user.ID)
		return false
	}
	if err := c.client.SendMessage(ctx, user.TelegramID, message); err != nil {
		log.Printf("[Telegram] send failed user=%s: %v", user.ID, err)
		return false
	}
	return true
}

// EmailChannel 透過郵件通知使用者。
type EmailChannel struct {
	client  EmailTransport
	subject string
}

// NewEmailChannel 建立 Email 通道。
func NewEmailChannel(client EmailTransport, subject string) *EmailChannel {
	return &EmailChannel{client: client, subject: subject}
}

// Name 回傳通道名稱。
func (c *EmailChannel) Name() string { return "email" }

// Enabled 依全域設定判斷通道是否開啟。
func (c *EmailChannel) Enabled(cfg settings.Core) bool { return cfg.SendAlertViaEmail }

// Send 寄出通知信。
func (c *EmailChannel) Send(ctx context.Context, user auth.User, message string) bool {
	if err := c.client.Send(ctx, []string{user.Email}, c.subject, message); err != nil {
		log.Printf("[Email] send failed user=%s: %v", user.ID, err)
		return false
	}
	return true
}
