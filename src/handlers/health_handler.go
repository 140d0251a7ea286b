package handlers

import (
	"net/http"

	"finpal-server/src/logger"
	"finpal-server/src/service"
	"finpal-server/src/util"

	"go.uber.org/zap"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteSuccess(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// Ready pings the store.
func Ready(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(r.Context()); err != nil {
			logger.Get().Warn("readiness check failed", zap.Error(err))
			util.WriteMessage(w, http.StatusServiceUnavailable, "Store unavailable")
			return
		}
		util.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
