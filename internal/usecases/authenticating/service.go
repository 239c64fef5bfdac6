package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const issuer = "sales-dashboard-api"

type Authenticator interface {
	// Enabled indica se a API exige token (AUTH_SECRET configurado)
	Enabled() bool
	IssueToken(subject string) (string, time.Time, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) Enabled() bool {
	return len(s.secret) > 0
}

// IssueToken gera um token de acesso para o portador informado (usado pelo CLI)
func (s *Service) IssueToken(subject string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, NewAuthError(ErrAuthDisabled, apiErrors.ErrInternalServer, "")
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, NewAuthError(ErrMissingSubject, apiErrors.ErrMissingRequiredData, "")
	}

	tokenID, err := utils.GenerateID()
	if err != nil {
		return "", time.Time{}, NewAuthError(ErrTokenGeneration, apiErrors.ErrInternalServer, err.Error())
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, NewAuthError(ErrTokenGeneration, apiErrors.ErrInternalServer, err.Error())
	}

	return signed, expiresAt, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrInvalidToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, newInvalidTokenError(err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, newInvalidTokenError("")
	}

	return claims, nil
}
