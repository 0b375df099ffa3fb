package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
)

// ErrorResponse is the body written for every failed HTTP request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const internalErrorMessage = "An unexpected error occurred"

// Handle logs the error with a message and reports it to Sentry. The error is
// returned unchanged so that callers can keep propagating it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	report(ge, err)
	return err
}

// HandleHTTP logs the error and writes a JSON error response. Messages of 5xx
// errors are not exposed to the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	hasGoerr := errors.As(err, &ge)

	switch {
	case statusCode >= http.StatusInternalServerError && hasGoerr:
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	case statusCode >= http.StatusInternalServerError:
		logger.Error("HTTP error", "status", statusCode, "error", err.Error())
	default:
		logger.Warn("HTTP client error", "status", statusCode, "error", err.Error())
	}

	message := err.Error()
	if statusCode >= http.StatusInternalServerError {
		report(ge, err)
		message = internalErrorMessage
	}

	WriteError(ctx, w, statusCode, message)
}

// WriteError writes the standard error body without logging
func WriteError(ctx context.Context, w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	body := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(ctx).Error("failed to encode error response", "error", err)
	}
}

func report(ge *goerr.Error, err error) {
	hub := sentry.CurrentHub().Clone()
	if ge != nil {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			for k, v := range ge.Values() {
				scope.SetExtra(k, v)
			}
		})
	}
	hub.CaptureException(err)
}
