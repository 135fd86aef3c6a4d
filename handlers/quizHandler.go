package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wikiquiz/models"
	"wikiquiz/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type QuizHandler struct {
	service *services.QuizService
	logger  *zap.SugaredLogger
}

func NewQuizHandler(service *services.QuizService, logger *zap.SugaredLogger) *QuizHandler {
	return &QuizHandler{service: service, logger: logger}
}

func (h *QuizHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/quizzes/generate", h.GenerateQuiz).Methods("POST")
}

func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	h.logger.Infof("Received quiz generation request")

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Errorf("Failed to decode quiz request JSON: %v", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	quiz, err := h.service.Generate(r.Context(), req.URL)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	notification := services.SuccessNotification(quiz)
	h.logger.Infof("Quiz generation completed successfully with ID %s", quiz.ID)
	writeJSONResponse(w, http.StatusOK, models.GenerateQuizResponse{
		Quiz:         quiz,
		Notification: &notification,
	})
}

func (h *QuizHandler) writeGenerationError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		h.logger.Warnf("Quiz generation request rejected: %v", err)
		writeJSONResponse(w, http.StatusBadRequest, ErrorResponse{
			Error: validationErr.Message,
			Field: validationErr.Field,
		})
		return
	}

	var genErr *services.GenerationError
	if !errors.As(err, &genErr) {
		h.logger.Errorf("Quiz generation failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to generate quiz")
		return
	}

	h.logger.Errorf("Quiz generation failed: %v", genErr)
	writeJSONResponse(w, generationStatus(genErr.Kind), ErrorResponse{
		Error: genErr.UserMessage(),
		Kind:  string(genErr.Kind),
	})
}

func generationStatus(kind services.GenerationErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindRateLimited:
		return http.StatusTooManyRequests
	case services.KindTimeout:
		return http.StatusGatewayTimeout
	case services.KindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
