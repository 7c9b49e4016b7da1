package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Claims são as informações carregadas no token de acesso ao painel
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
