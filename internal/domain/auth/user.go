package auth

import (
	"errors"
	"strings"
	"time"
)

// Role 定義系統角色。
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status 定義帳號狀態。
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// User 基本帳號資料。TelegramID 為選填的機器人聊天對象識別，
// 空字串代表該使用者未綁定 Telegram。
type User struct {
	ID         string
	Email      string
	Name       string
	TelegramID string
	Role       Role
	Status     Status
	Password   string // 雜湊後密碼
	CreatedAt  time.Time
}

// Validate 基本欄位檢查。ID 由儲存層指派,不在檢查範圍。
func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if u.Role == "" {
		return errors.New("role is required")
	}
	if u.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

// IsActive 檢查是否可登入。
func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// HasTelegram 回報使用者是否可透過 Telegram 通知。
func (u User) HasTelegram() bool {
	return strings.TrimSpace(u.TelegramID) != ""
}
