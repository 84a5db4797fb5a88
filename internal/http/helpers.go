package http

import (
	"encoding/json"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	switch {
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: err.Error()}
	case goerrors.IsCategory(err, goerrors.CategoryAuth):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()}
	case goerrors.IsCategory(err, goerrors.CategoryExternal):
		return http.StatusServiceUnavailable, errorResponse{Error: "store_unavailable"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal_error"}
	}
}
