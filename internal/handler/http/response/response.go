package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the shape of every non-2xx response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// File writes a binary attachment.
func File(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write file response", "filename", filename, "error", err)
	}
}

// Error responses
func Error(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, ErrorBody{Detail: detail})
}

func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

func ValidationError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusUnprocessableEntity, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

func Conflict(w http.ResponseWriter, detail string) {
	Error(w, http.StatusConflict, detail)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}
