package services

import (
	"errors"
	"fmt"

	"wikiquiz/models"
)

const (
	successTitle = "Quiz Generated Successfully"
	failureTitle = "Quiz Generation Failed"
)

func SuccessNotification(quiz *models.Quiz) models.Notification {
	return models.Notification{
		Kind:        models.NotificationSuccess,
		Title:       successTitle,
		Description: fmt.Sprintf("Generated %d questions for %q", len(quiz.Questions), quiz.Title),
	}
}

// FailureNotification describes err for the user. Errors that are not a
// *GenerationError are reported as the service being unavailable.
func FailureNotification(err error) models.Notification {
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		genErr = classifyGenerationError(err)
	}
	return models.Notification{
		Kind:        models.NotificationFailure,
		Title:       failureTitle,
		Description: genErr.UserMessage(),
	}
}
