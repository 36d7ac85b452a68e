package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/finance-tracker-api/pkg/apiErrors"
)

type TransitionStatusRequest struct {
	Status domain.RecurringSaleStatus `json:"status"`
}

func CloseSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selling.CloseSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		closed, err := service.CloseSale(r.Context(), req)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, closed)
	}
}

func TransitionSaleStatus(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req TransitionStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.TransitionStatus(r.Context(), id, req.Status)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, sale)
	}
}
