package config

import (
	"encoding/json"
	"net/http"
)

type ErrorKind string

const (
	KindBadInput    ErrorKind = "bad_input"
	KindServerFault ErrorKind = "server_fault"
)

const (
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidDateFormat  = "invalid_date_format"
	CodeScheduleValidation = "schedule_validation_failed"
	CodeFutureDate         = "future_date"
	CodeNotFound           = "not_found"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeConflict           = "conflict"
	CodeInternal           = "internal"
)

type ErrorResponse struct {
	Error   string    `json:"error"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Log.WithError(err).Error("Failed to encode response")
	}
}

// WriteError reports a client error. Status codes >= 500 are tagged as
// server faults.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	kind := KindBadInput
	if status >= http.StatusInternalServerError {
		kind = KindServerFault
	}
	JSON(w, status, ErrorResponse{Error: code, Kind: kind, Message: message})
}

// WriteServerError hides err outside development.
func WriteServerError(w http.ResponseWriter, err error) {
	message := "internal server error"
	if IsDevelopment() && err != nil {
		message = err.Error()
	}
	WriteError(w, http.StatusInternalServerError, CodeInternal, message)
}
