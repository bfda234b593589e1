package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// MessageResponse confirms an operation without returning a record
type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, data)
}

// returns 200 OK with {"message": ...}
func ResponseMessage(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// ------------- Error responses -------------

func ResponseError(w http.ResponseWriter, code int, detail string) {
	ResponseJSON(w, code, ErrorResponse{Detail: detail})
}

// returns 422 Unprocessable Entity
func ResponseUnprocessable(w http.ResponseWriter, detail string, errors map[string]string) {
	ResponseJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: detail, Errors: errors})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	ResponseError(w, http.StatusUnauthorized, detail)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusForbidden, detail)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusNotFound, detail)
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusConflict, detail)
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusTooManyRequests, detail)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusInternalServerError, detail)
}
