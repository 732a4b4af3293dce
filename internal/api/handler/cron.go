package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
)

// Tipos de cron job que podem ser disparados manualmente
const (
	CronJobTypeScenarioRecalc = "scenario-recalc"
	CronJobTypeAll            = "all"
)

// CronJob é implementado pelos serviços de internal/scheduler
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices indexa os jobs pelo tipo usado na URL
type CronJobServices map[string]CronJob

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for jobType := range s {
		types = append(types, jobType)
	}
	sort.Strings(types)
	return types
}

// RunCronJob executa manualmente uma cron job; a rota é restrita a administradores
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		started := map[string]bool{}

		if cronType == CronJobTypeAll {
			for jobType, job := range services {
				started[jobType] = job.TriggerManualSync()
			}
		} else {
			job, ok := services[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Tipo de cron job inválido. Valores aceitos: "+strings.Join(append(services.types(), CronJobTypeAll), ", "), nil)
				return
			}
			started[cronType] = job.TriggerManualSync()
		}

		log.ForContext(r.Context()).WithField("job", cronType).Info("cron: execução manual solicitada")

		writeResponse(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for jobType, job := range services {
			status[jobType] = job.GetStatus()
		}

		writeResponse(w, r, http.StatusOK, status)
	}
}
