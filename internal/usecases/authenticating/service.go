package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "sales-dashboard-api"

type Authenticator interface {
	IssueToken(apiKey string) (string, time.Time, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg config.Auth
	now func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

// IssueToken troca uma chave de API por um token de acesso. A chave admin é
// conferida primeiro; a chave de leitura gera um token com perfil viewer.
func (s *Service) IssueToken(apiKey string) (string, time.Time, error) {
	if apiKey == "" {
		return "", time.Time{}, NewAuthError(ErrMissingAPIKey, apiErrors.ErrMissingRequiredData, "Informe a chave de API")
	}

	if s.cfg.APIKeyHash == "" && s.cfg.ViewerKeyHash == "" {
		return "", time.Time{}, NewAuthError(ErrNotConfigured, apiErrors.ErrInternalServer, "Nenhuma chave de API configurada")
	}

	role := ""
	switch {
	case matches(s.cfg.APIKeyHash, apiKey):
		role = domain.RoleAdmin
	case matches(s.cfg.ViewerKeyHash, apiKey):
		role = domain.RoleViewer
	default:
		return "", time.Time{}, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Chave de API incorreta")
	}

	token, expiresAt, err := s.generateJWT(role)
	if err != nil {
		return "", time.Time{}, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, expiresAt, nil
}

func matches(hash, apiKey string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey)) == nil
}

func (s *Service) generateJWT(role string) (string, time.Time, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := domain.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			Subject:   role,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Faça login novamente")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleViewer {
		return nil, NewAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, "Perfil desconhecido")
	}

	return claims, nil
}
