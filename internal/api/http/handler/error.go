package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/sleeptracker-server/internal/model"
	"github.com/dtroode/sleeptracker-server/internal/validator"
)

// handleError maps service errors to HTTP status codes and stable error
// codes. Anything unexpected becomes a generic internal error without detail.
func handleError(w http.ResponseWriter, err error) {
	var vErr *validator.Error
	if errors.As(err, &vErr) {
		WriteErrorResponse(w, http.StatusBadRequest, "INVALID_ONBOARDING_DATA", vErr.Message+" Please try again.")
		return
	}

	switch {
	case errors.Is(err, model.ErrMalformedRequest):
		WriteErrorResponse(w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS", "Request contains missing fields. Check and try again.")
	case errors.Is(err, model.ErrUnknownStep):
		WriteErrorResponse(w, http.StatusBadRequest, "INVALID_ONBOARDING_STEP", err.Error())
	case errors.Is(err, model.ErrInvalidInterval):
		WriteErrorResponse(w, http.StatusBadRequest, "INVALID_SCREEN_INTERVAL", err.Error())
	case errors.Is(err, model.ErrInvalidParameter):
		WriteErrorResponse(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.Is(err, model.ErrDuplicateNickname):
		WriteErrorResponse(w, http.StatusConflict, "NICKNAME_TAKEN", "Nickname already exists.")
	case errors.Is(err, model.ErrDuplicateIdentity):
		WriteErrorResponse(w, http.StatusConflict, "IDENTITY_TAKEN", "Identity already exists.")
	case errors.Is(err, model.ErrInvalidCredentials):
		WriteErrorResponse(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password. Please try again.")
	case errors.Is(err, model.ErrNotFound):
		WriteErrorResponse(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found.")
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error.")
	}
}
