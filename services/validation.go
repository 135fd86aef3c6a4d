package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"wikiquiz/models"

	"github.com/go-playground/validator/v10"
)

const urlField = "url"

// ValidationError is an input problem reported next to the offending field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("wikiarticle", isWikipediaArticleURL); err != nil {
		panic(fmt.Sprintf("failed to register wikiarticle validation: %v", err))
	}
	return v
}

// ValidateArticleURL trims the input and checks it is an absolute http(s)
// Wikipedia URL with a /wiki/ path. It returns the trimmed URL.
func ValidateArticleURL(raw string) (string, error) {
	req := models.GenerateQuizRequest{URL: strings.TrimSpace(raw)}

	err := validate.Struct(req)
	if err == nil {
		return req.URL, nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "", &ValidationError{Field: urlField, Message: "Please enter a valid URL", Value: req.URL}
	}

	fieldErr := fieldErrors[0]
	return "", &ValidationError{
		Field:   urlField,
		Message: urlErrorMessage(fieldErr.Tag()),
		Value:   req.URL,
		Rule:    fieldErr.Tag(),
	}
}

func urlErrorMessage(tag string) string {
	switch tag {
	case "required":
		return "Please enter a URL"
	case "wikiarticle":
		return "Must be a Wikipedia article URL"
	default:
		return "Please enter a valid URL"
	}
}

func isWikipediaArticleURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host != "wikipedia.org" && !strings.HasSuffix(host, ".wikipedia.org") {
		return false
	}

	_, title, found := strings.Cut(u.Path, "/wiki/")
	return found && title != ""
}
