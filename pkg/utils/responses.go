package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every handler writes.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// headers are already out; a failed encode means the client went away
	_ = json.NewEncoder(w).Encode(body)
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusOK, Response{Status: true, Message: message, Data: data})
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusCreated, Response{Status: true, Message: message, Data: data})
}

// ResponseError writes a failed envelope; fieldErrors carries validation details and may be nil.
func ResponseError(w http.ResponseWriter, code int, message string, fieldErrors any) {
	writeEnvelope(w, code, Response{Message: message, Errors: fieldErrors})
}

func ResponseBadRequest(w http.ResponseWriter, message string, fieldErrors any) {
	ResponseError(w, http.StatusBadRequest, message, fieldErrors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message, nil)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusConflict, message, nil)
}

// ResponseInternalError never echoes the underlying error to the client.
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message, nil)
}
