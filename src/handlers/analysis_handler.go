package handlers

import (
	"net/http"

	"finpal-server/src/service"
	"finpal-server/src/util"

	"github.com/go-chi/chi/v5"
)

func GetDailyAnalysis(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		analysis, err := svc.GetDailyAnalysis(r.Context(), claims, chi.URLParam(r, "userId"), r.URL.Query().Get("date"))
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, analysis)
	}
}
