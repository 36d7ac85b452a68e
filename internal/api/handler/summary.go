package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/history"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/finance-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

const (
	HistoryModeSingle = "single"
	HistoryModeBulk   = "bulk"
)

type SnapshotResponse struct {
	Snapshot *domain.MonthlySnapshot `json:"snapshot"`
	Created  bool                    `json:"created"`
}

// GetMonthlySummary devolve o resumo de um mês. Sem "month" usa o mês corrente.
func GetMonthlySummary(service history.Historian, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := clk.Now()
		month := calendar.MonthStart(now)

		if raw := r.URL.Query().Get("month"); raw != "" {
			parsed, err := calendar.ParsePeriod(raw, now.Location())
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			month = parsed
		}

		summary, err := service.GetMonthlySummary(r.Context(), month)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

func GetHistory(service history.Historian, clk clock.Clock, cfg config.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months, err := intQuery(r, "months", cfg.DefaultMonths)
		if err != nil || months <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro months deve ser um inteiro positivo", nil)
			return
		}

		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = HistoryModeSingle
		}

		now := clk.Now()
		var summaries []domain.MonthlySummary
		switch mode {
		case HistoryModeSingle:
			summaries, err = service.GetHistory(r.Context(), months, now)
		case HistoryModeBulk:
			summaries, err = service.GetHistoryBulk(r.Context(), months, now)
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Modo inválido. Valores aceitos: single, bulk", nil)
			return
		}
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summaries)
	}
}

func GetHistoryRange(service history.Historian, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc := clk.Now().Location()
		query := r.URL.Query()

		if query.Get("from") == "" || query.Get("to") == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros from e to são obrigatórios", nil)
			return
		}

		from, err := calendar.ParsePeriod(query.Get("from"), loc)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		to, err := calendar.ParsePeriod(query.Get("to"), loc)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summaries, err := service.GetRange(r.Context(), from, to)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summaries)
	}
}

// CreateSnapshot congela o resumo do mês informado. Com force=true
// substitui um snapshot existente.
func CreateSnapshot(service history.Historian, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := httprouter.ParamsFromContext(r.Context()).ByName("period")

		month, err := calendar.ParsePeriod(period, clk.Now().Location())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		force := false
		if raw := r.URL.Query().Get("force"); raw != "" {
			force, err = strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro force deve ser booleano", nil)
				return
			}
		}

		snapshot, created, err := service.SnapshotMonth(r.Context(), month, force)
		if err != nil {
			if errors.Is(err, summarizing.ErrSourceUnavailable) {
				writeUsecaseError(w, r, err)
				return
			}
			log.ForContext(r.Context()).WithError(err).WithField("period", period).Error("Erro ao gerar snapshot")
			apiErrors.WriteError(w, apiErrors.ErrSnapshotFailed, "Não foi possível gravar o snapshot", nil)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, r, status, SnapshotResponse{Snapshot: snapshot, Created: created})
	}
}
