package util

import (
	"encoding/json"
	"net/http"

	"finpal-server/src/apperr"
	"finpal-server/src/logger"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Error("failed to encode response", zap.Error(err))
	}
}

// WriteSuccess wraps data as {success:true,data}.
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, successEnvelope{Success: true, Data: data})
}

// WriteError turns err into {success:false,error} with the matching status.
// Causes are logged; only the public message is returned.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := apperr.Public(err)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if status >= http.StatusInternalServerError {
		logger.Get().Error("request failed", fields...)
	} else {
		logger.Get().Info("request rejected", fields...)
	}

	WriteJSON(w, status, errorEnvelope{Success: false, Error: message})
}

// WriteMessage writes an error envelope with an explicit status and message.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorEnvelope{Success: false, Error: message})
}
