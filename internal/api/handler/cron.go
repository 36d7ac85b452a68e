package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/finance-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMonthlySnapshot   = "monthly-snapshot"
	CronJobTypeLoginAttemptSweep = "login-attempt-sweep"
	CronJobTypeAll               = "all"
)

// CronJob é uma rotina agendada que também pode ser disparada manualmente.
// TriggerManualSync retorna false quando a rotina já está em execução.
type CronJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	MonthlySnapshotSync CronJob
	LoginAttemptSweep   CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := map[string]CronJob{}
	if s.MonthlySnapshotSync != nil {
		jobs[CronJobTypeMonthlySnapshot] = s.MonthlySnapshotSync
	}
	if s.LoginAttemptSweep != nil {
		jobs[CronJobTypeLoginAttemptSweep] = s.LoginAttemptSweep
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		logger := log.ForContext(r.Context()).WithField("job", cronType)
		jobs := services.byType()

		if cronType == CronJobTypeAll {
			started := map[string]bool{}
			for name, job := range jobs {
				started[name] = job.TriggerManualSync(r.Context())
			}
			logger.Info("Execução manual de todas as cron jobs solicitada")
			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": "Cron jobs disparadas",
				"type":    cronType,
				"started": started,
			})
			return
		}

		job, ok := jobs[cronType]
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Tipo de cron job inválido. Valores aceitos: monthly-snapshot, login-attempt-sweep, all", nil)
			return
		}

		if !job.TriggerManualSync(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, "Cron job já está em execução", nil)
			return
		}

		logger.Info("Execução manual de cron job iniciada")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
