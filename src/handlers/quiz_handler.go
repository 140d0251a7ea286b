package handlers

import (
	"net/http"

	"finpal-server/src/models"
	"finpal-server/src/service"
	"finpal-server/src/util"

	"github.com/go-chi/chi/v5"
)

func SubmitQuiz(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		var req models.QuizSubmitRequest
		if err := util.DecodeJSON(r, &req); err != nil {
			util.WriteError(w, r, err)
			return
		}
		quiz, err := svc.SubmitQuiz(r.Context(), claims, req)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, quiz)
	}
}

func GetQuizAnalysis(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFrom(r)
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		quiz, err := svc.GetQuizAnalysis(r.Context(), claims, chi.URLParam(r, "userId"))
		if err != nil {
			util.WriteError(w, r, err)
			return
		}
		util.WriteSuccess(w, http.StatusOK, quiz)
	}
}

// GetQuizQuestions serves the question catalog; no token required.
func GetQuizQuestions(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteSuccess(w, http.StatusOK, svc.Questions())
	}
}
