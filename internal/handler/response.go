// Package handler provides the HTTP handlers for the Pulso API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pulso-rh/pulso/internal/auth"
	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/service"
)

// response is the JSON envelope every endpoint answers with.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int        `json:"total,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeJSON writes a JSON envelope with the given status.
func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeData writes a success envelope carrying a payload.
func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, response{Success: true, Message: message, Data: data})
}

// writeList writes a success envelope carrying a list and its length.
func writeList(w http.ResponseWriter, message string, data interface{}, total int) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: message, Data: data, Total: &total})
}

// writeError maps an error to its status code and writes the failure
// envelope. Internal errors never leak their cause to the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = service.ErrInternalError.Error()
	}

	writeJSON(w, status, response{Success: false, Message: message})
}

// statusFor maps service and domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrUserNotFound):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSectorNotFound),
		errors.Is(err, domain.ErrCollaboratorNotFound),
		errors.Is(err, domain.ErrFeedbackNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrSectorInvalid),
		errors.Is(err, domain.ErrSectorNameInUse),
		errors.Is(err, domain.ErrSectorInUse),
		errors.Is(err, domain.ErrCollaboratorExists),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrSectorRequired),
		errors.Is(err, service.ErrInvalidIdentNumber),
		errors.Is(err, service.ErrInvalidFullName),
		errors.Is(err, service.ErrInvalidReviewerName),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrDescriptionTooLong):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
