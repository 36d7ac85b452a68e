package authenticating

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)

func TestTokenSigner_IssueToken(t *testing.T) {
	signer := NewTokenSigner("segredo", "admin")

	token, err := signer.IssueToken(issuedAt)

	require.NoError(t, err)
	parts := strings.Split(token, ":")
	require.Len(t, parts, 3)
	assert.Equal(t, "admin", parts[0])
	assert.Equal(t, "1780300800000", parts[1])
	assert.Len(t, parts[2], 64)
}

func TestTokenSigner_ParseToken(t *testing.T) {
	signer := NewTokenSigner("segredo", "admin")
	token, err := signer.IssueToken(issuedAt)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   func() string
		now     time.Time
		wantErr error
	}{
		{
			name:  "token recém emitido",
			token: func() string { return token },
			now:   issuedAt,
		},
		{
			name:  "emitido há 23h59m",
			token: func() string { return token },
			now:   issuedAt.Add(23*time.Hour + 59*time.Minute),
		},
		{
			name:  "emitido há exatamente 24h",
			token: func() string { return token },
			now:   issuedAt.Add(24 * time.Hour),
		},
		{
			name:    "emitido há 24h e 1ms",
			token:   func() string { return token },
			now:     issuedAt.Add(24*time.Hour + time.Millisecond),
			wantErr: ErrTokenExpired,
		},
		{
			name: "assinado com outro segredo",
			token: func() string {
				other, _ := NewTokenSigner("outro-segredo", "admin").IssueToken(issuedAt)
				return other
			},
			now:     issuedAt,
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "data de emissão adulterada",
			token:   func() string { return strings.Replace(token, ":1780300800000:", ":1780300900000:", 1) },
			now:     issuedAt,
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "partes a mais",
			token:   func() string { return token + ":extra" },
			now:     issuedAt,
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "assinatura que não é hex",
			token:   func() string { return "admin:1780300800000:zz" },
			now:     issuedAt,
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "vazio",
			token:   func() string { return "" },
			now:     issuedAt,
			wantErr: ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := signer.ParseToken(tt.token(), tt.now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, signer.VerifyToken(tt.token(), tt.now))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "admin", parsed.SubjectTag)
			assert.Equal(t, issuedAt, parsed.IssuedAt().UTC())
			assert.True(t, signer.VerifyToken(tt.token(), tt.now))
		})
	}
}
