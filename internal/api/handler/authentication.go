package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/finance-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/finance-tracker-api/pkg/middleware"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginService interface {
	Login(ctx context.Context, clientID, password string) (*domain.LoginResponse, error)
}

func Login(service LoginService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		resp, err := service.Login(r.Context(), middleware.ClientID(r), req.Password)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, resp)
	}
}

var _ LoginService = (*authenticating.Service)(nil)
