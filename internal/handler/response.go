package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"team-dashboard/internal/model"
	"team-dashboard/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	case errors.Is(err, model.ErrNoToken),
		errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrSessionRevoked),
		errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "User already exists"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	case errors.Is(err, model.ErrTemplateNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Template not found"
	case errors.Is(err, model.ErrPlayerNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Player not found"
	case errors.Is(err, model.ErrTaskNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Task not found"
	case errors.Is(err, model.ErrMessageNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Message not found"
	case errors.Is(err, model.ErrQuoteNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Quote not found"
	case errors.Is(err, model.ErrCommendationNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Commendation not found"
	case errors.Is(err, model.ErrMediaNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Media item not found"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
