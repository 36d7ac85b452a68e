package domain

import "time"

// AuthToken é o token de acesso decomposto. Nunca é persistido.
type AuthToken struct {
	SubjectTag string
	IssuedAtMs int64
	Signature  string
}

func (t AuthToken) IssuedAt() time.Time {
	return time.UnixMilli(t.IssuedAtMs)
}

// LoginAttempt guarda as falhas de login de um cliente (IP)
type LoginAttempt struct {
	ClientID     string    `json:"client_id"`
	Attempts     int       `json:"attempts"`
	BlockedUntil time.Time `json:"blocked_until"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *LoginAttempt) IsBlocked(now time.Time) bool {
	return !a.BlockedUntil.IsZero() && a.BlockedUntil.After(now)
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
