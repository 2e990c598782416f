package auth

import "time"

// TokenPair 封裝 access token 與其效期。
type TokenPair struct {
	AccessToken  string
	AccessExpiry time.Time
}
