package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/billing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/expensing"
	"github.com/vfg2006/finance-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/utils"
)

// ExpenseRequest recebe as datas como "YYYY-MM-DD"
type ExpenseRequest struct {
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      string          `json:"category_id"`
	Type            string          `json:"type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	BillingDay      *int            `json:"billing_day"`
	LastPaymentDate string          `json:"last_payment_date"`
}

func (req ExpenseRequest) toDomain(id string, loc *time.Location) (*domain.Expense, error) {
	start, err := utils.ParseDate(req.StartDate, loc)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(req.EndDate, loc)
	if err != nil {
		return nil, err
	}
	lastPayment, err := utils.ParseDate(req.LastPaymentDate, loc)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:              id,
		Name:            req.Name,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		Type:            domain.ExpenseType(req.Type),
		EndDate:         end,
		BillingDay:      req.BillingDay,
		LastPaymentDate: lastPayment,
	}
	if start != nil {
		expense.StartDate = *start
	}

	return expense, nil
}

func decodeExpense(w http.ResponseWriter, r *http.Request, id string, loc *time.Location) (*domain.Expense, bool) {
	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return nil, false
	}

	expense, err := req.toDomain(id, loc)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas devem estar no formato YYYY-MM-DD", nil)
		return nil, false
	}

	return expense, true
}

func CreateExpense(service expensing.Expenser, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expense, ok := decodeExpense(w, r, "", clk.Now().Location())
		if !ok {
			return
		}

		created, err := service.Create(r.Context(), expense)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, created)
	}
}

func UpdateExpense(service expensing.Expenser, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		expense, ok := decodeExpense(w, r, id, clk.Now().Location())
		if !ok {
			return
		}

		updated, err := service.Update(r.Context(), expense)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, updated)
	}
}

func GetExpense(service expensing.Expenser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		expense, err := service.Get(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, expense)
	}
}

func ListExpenses(service expensing.Expenser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := service.List(r.Context())
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		if expenses == nil {
			expenses = []domain.Expense{}
		}
		writeJSON(w, r, http.StatusOK, expenses)
	}
}

func GetBillingStatus(service billing.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		status, err := service.StatusByID(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}

func MarkExpensePaid(service billing.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		status, err := service.MarkPaid(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}

func ListUpcomingPayments(service billing.Scheduler, cfg config.Billing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := intQuery(r, "days", cfg.UpcomingWindowDays)
		if err != nil || days < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro days deve ser um inteiro não negativo", nil)
			return
		}

		upcoming, err := service.ListUpcoming(r.Context(), days)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		if upcoming == nil {
			upcoming = []domain.UpcomingPayment{}
		}
		writeJSON(w, r, http.StatusOK, upcoming)
	}
}
