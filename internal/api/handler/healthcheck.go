package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/goal-tracker-api/pkg/log"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde com o horário do servidor. Com db informado, também verifica o banco.
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}

		code := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("healthcheck: banco indisponível")
				status["status"] = "degraded"
				status["database"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}

		writeResponse(w, r, code, status)
	})
}
