package handlers

import (
	"net/http"

	"finpal-server/src/models"
	"finpal-server/src/service"
	"finpal-server/src/util"

	"github.com/go-chi/chi/v5"
)

func AddSpendingEntry(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		var req models.SpendingEntryRequest
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, r, err)
			return
		}
		entry, err := svc.AddSpendingEntry(r.Context(), claims, req)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, entry)
	}
}

func GetSpendingEntries(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		entries, err := svc.GetSpendingEntries(r.Context(), claims, chi.URLParam(r, "userId"), r.URL.Query().Get("date"))
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, entries)
	}
}

func UpdateSpendingEntry(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		var req models.SpendingEntryRequest
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, r, err)
			return
		}
		entry, err := svc.UpdateSpendingEntry(r.Context(), claims, chi.URLParam(r, "id"), req)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, entry)
	}
}

func DeleteSpendingEntry(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		if err := svc.DeleteSpendingEntry(r.Context(), claims, chi.URLParam(r, "id")); err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, nil)
	}
}
