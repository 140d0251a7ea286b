package handlers

import (
	"net/http"

	"finpal-server/src/models"
	"finpal-server/src/service"
	"finpal-server/src/util"

	"github.com/go-chi/chi/v5"
)

func PostChatMessage(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		var req models.ChatMessageRequest
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, r, err)
			return
		}
		reply, err := svc.PostChatMessage(r.Context(), claims, req)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, reply)
	}
}

func GetChatHistory(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		history, err := svc.GetChatHistory(r.Context(), claims, chi.URLParam(r, "userId"))
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, history)
	}
}
