package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func newTestService(secret string, ttl time.Duration, now time.Time) *Service {
	s := NewService(config.Auth{Secret: secret, TokenTTL: ttl}).(*Service)
	s.now = func() time.Time { return now }
	return s
}

func TestService_IssueAndValidate(t *testing.T) {
	now := time.Now()
	service := newTestService("segredo-de-teste", time.Hour, now)

	token, expiresAt, err := service.IssueToken("gerente-centro")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "gerente-centro", claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestService_ValidateToken_Erros(t *testing.T) {
	now := time.Now()
	service := newTestService("segredo-de-teste", time.Hour, now)

	expiredIssuer := newTestService("segredo-de-teste", time.Minute, now.Add(-2*time.Hour))
	expired, _, err := expiredIssuer.IssueToken("gerente")
	require.NoError(t, err)

	otherSecret := newTestService("outro-segredo", time.Hour, now)
	foreign, _, err := otherSecret.IssueToken("gerente")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: "x"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "Token vazio", token: "", wantErr: ErrMissingToken},
		{name: "Token expirado", token: expired, wantErr: ErrExpiredToken},
		{name: "Assinado com outro segredo", token: foreign, wantErr: ErrInvalidToken},
		{name: "Algoritmo none", token: noneToken, wantErr: ErrInvalidToken},
		{name: "Texto aleatório", token: "abc.def.ghi", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsAuthorizationError(err))
		})
	}
}

func TestService_IssueToken_Erros(t *testing.T) {
	t.Run("Autenticação desabilitada", func(t *testing.T) {
		service := newTestService("", time.Hour, time.Now())

		assert.False(t, service.Enabled())
		_, _, err := service.IssueToken("gerente")
		assert.ErrorIs(t, err, ErrAuthDisabled)
	})

	t.Run("Portador vazio", func(t *testing.T) {
		service := newTestService("segredo", time.Hour, time.Now())

		assert.True(t, service.Enabled())
		_, _, err := service.IssueToken("   ")
		assert.ErrorIs(t, err, ErrMissingSubject)
	})
}

func TestNewService_TTLPadrao(t *testing.T) {
	service := NewService(config.Auth{Secret: "segredo"}).(*Service)
	assert.Equal(t, 24*time.Hour, service.ttl)
}
