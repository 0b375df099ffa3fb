package http

import (
	"net/http"
	"time"

	"github.com/secmon-lab/airisk/pkg/usecase"
	"github.com/secmon-lab/airisk/pkg/utils/errutil"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// healthHandler reports OK while the repository answers a ping
func healthHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Service:   serviceName,
		}

		if err := uc.Repository().Ping(r.Context()); err != nil {
			errutil.Handle(r.Context(), err, "health check failed")
			resp.Status = "ERROR"
			writeJSON(r.Context(), w, http.StatusServiceUnavailable, resp)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
