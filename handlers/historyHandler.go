package handlers

import (
	"errors"
	"net/http"

	"wikiquiz/db"
	"wikiquiz/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	service *services.HistoryService
	logger  *zap.SugaredLogger
}

func NewHistoryHandler(service *services.HistoryService, logger *zap.SugaredLogger) *HistoryHandler {
	return &HistoryHandler{service: service, logger: logger}
}

func (h *HistoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/history", h.ListHistory).Methods("GET")
	router.HandleFunc("/history/{id}", h.GetQuiz).Methods("GET")
	router.HandleFunc("/history/{id}", h.DeleteQuiz).Methods("DELETE")
}

func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListEntries(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	writeJSONResponse(w, http.StatusOK, entries)
}

func (h *HistoryHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	quiz, err := h.service.GetQuiz(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrQuizNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "Quiz not found")
		} else {
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve quiz")
		}
		return
	}

	writeJSONResponse(w, http.StatusOK, quiz)
}

func (h *HistoryHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteQuiz(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrQuizNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "Quiz not found")
		} else {
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete quiz")
		}
		return
	}

	h.logger.Infof("Deleted quiz %s from history", id)
	w.WriteHeader(http.StatusNoContent)
}
