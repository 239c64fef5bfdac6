package domain

import "github.com/golang-jwt/jwt/v5"

// Claims representa o token de acesso ao painel
type Claims struct {
	jwt.RegisteredClaims
}
