package authenticating

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

// TokenTTL é a validade de um token a partir de sua emissão
const TokenTTL = 24 * time.Hour

// TokenSigner emite e valida tokens no formato "subject:issuedAtMs:assinatura",
// onde a assinatura é o HMAC-SHA256 (hex) de "subject:issuedAtMs"
type TokenSigner struct {
	secret     []byte
	subjectTag string
}

func NewTokenSigner(secret, subjectTag string) *TokenSigner {
	return &TokenSigner{
		secret:     []byte(secret),
		subjectTag: subjectTag,
	}
}

func (s *TokenSigner) IssueToken(now time.Time) (string, error) {
	payload := fmt.Sprintf("%s:%d", s.subjectTag, now.UnixMilli())

	signature, err := jwt.SigningMethodHS256.Sign(payload, s.secret)
	if err != nil {
		return "", fmt.Errorf("erro ao assinar token: %w", err)
	}

	return payload + ":" + hex.EncodeToString(signature), nil
}

// ParseToken valida assinatura e validade. A comparação da assinatura é feita
// em tempo constante pelo método HS256.
func (s *TokenSigner) ParseToken(token string, now time.Time) (*domain.AuthToken, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return nil, ErrTokenInvalid
	}

	signature, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, ErrTokenInvalid
	}

	payload := parts[0] + ":" + parts[1]
	if err := jwt.SigningMethodHS256.Verify(payload, signature, s.secret); err != nil {
		return nil, ErrTokenInvalid
	}

	issuedAtMs, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	parsed := &domain.AuthToken{
		SubjectTag: parts[0],
		IssuedAtMs: issuedAtMs,
		Signature:  parts[2],
	}

	if now.Sub(parsed.IssuedAt()) > TokenTTL {
		return nil, ErrTokenExpired
	}

	return parsed, nil
}

func (s *TokenSigner) VerifyToken(token string, now time.Time) bool {
	_, err := s.ParseToken(token, now)
	return err == nil
}
