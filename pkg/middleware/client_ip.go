package middleware

import (
	"net/http"
	"strings"
)

const unknownClient = "unknown"

// ClientID identifica o cliente para o limitador de login: primeiro salto de
// X-Forwarded-For, depois X-Real-IP, senão "unknown"
func ClientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return unknownClient
}
