// Package handlers provides the JSON HTTP handlers for the net worth tracker.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "networth_tracker/internal/errors"
)

// respondJSON writes data as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// errorResponse is the JSON shape of an error reply.
type errorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// respondError maps an error to its HTTP status and writes it as JSON.
// Internal errors are logged and masked.
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)

	resp := errorResponse{Error: err.Error()}
	if appErr, ok := err.(*apperrors.AppError); ok {
		resp.Error = appErr.Message
		resp.Details = appErr.Details
	}
	if status >= 500 {
		log.Printf("Internal error: %v", err)
		resp.Error = "internal error"
		resp.Details = nil
	}

	respondJSON(w, status, resp)
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, "invalid request body", err)
	}
	return nil
}
