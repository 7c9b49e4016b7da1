package handler

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type TokenRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken troca a chave de API por um token Bearer
func IssueToken(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if !validateRequest(w, req) {
			return
		}

		token, expiresAt, err := service.IssueToken(req.APIKey)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresAt: expiresAt,
		})
	}
}

// handleAuthError trata erros de autenticação e retorna a resposta apropriada
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if authErr.Code == apiErrors.ErrInternalServer {
			log.ForComponent(r.Context(), "handler").WithError(err).Error("Erro ao emitir token")
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	switch {
	case authenticating.IsCredentialsError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)
	case authenticating.IsAuthorizationError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao emitir token", nil)
	}
}
