// Package httpjson writes JSON responses and the API's error envelope.
//
// Every error body has the shape {"msg": "..."} with a non-2xx status,
// which is what the SPA surfaces directly in its UI. Handlers map
// failures onto the taxonomy: 400 validation, 401 authentication,
// 403 authorization, 404 not found, 500 anything unexpected (generic
// message, detail logged server-side only).
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Msg string `json:"msg"`
}

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the {"msg": ...} envelope with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Msg: msg})
}

// BadRequest writes a 400 validation error.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// Unauthorized writes a 401 authentication error.
func Unauthorized(w http.ResponseWriter, msg string) {
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden writes a 403 authorization error.
func Forbidden(w http.ResponseWriter, msg string) {
	Error(w, http.StatusForbidden, msg)
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Decode parses the request body as JSON into dst. Unknown fields are
// tolerated; malformed bodies return an error for the handler to map to
// a 400.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// ErrorLogger pairs server-side error logging with generic client
// responses, so 500 bodies never leak internals.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// ServerError logs the underlying error with context and writes a 500
// with a generic message.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, logMsg string, err error) {
	e.log.Error(logMsg, zap.Error(err))
	Error(w, http.StatusInternalServerError, "Server error")
}

// BadRequestLogged logs the underlying error and writes a 400 with the
// given client-facing message.
func (e *ErrorLogger) BadRequestLogged(w http.ResponseWriter, logMsg string, err error, clientMsg string) {
	e.log.Warn(logMsg, zap.Error(err))
	BadRequest(w, clientMsg)
}
