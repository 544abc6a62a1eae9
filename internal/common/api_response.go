package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"aeroportal/flightops/internal/constants"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	writeJSON(w, code, dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: elapsed(initTime),
		Data:         data,
	})
}

// RespondError sends a standardized JSON error response. The error text wins
// over message when both are present.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	msg := message
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	writeJSON(w, code, dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      msg,
		ResponseTime: elapsed(initTime),
	})
}

// RespondCodedError is RespondError with a machine-readable error code.
func RespondCodedError(w http.ResponseWriter, initTime time.Time, errCode, message string, statusCode int) {
	writeJSON(w, statusCode, dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Code:         errCode,
		Message:      message,
		ResponseTime: elapsed(initTime),
	})
}

// RespondAttachment streams a binary download such as an XLSX report.
func RespondAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.Error("Attachment write failed", "filename", filename, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}

// elapsed renders the handler latency for the response envelope.
func elapsed(since time.Time) string {
	return fmt.Sprintf("%dms", time.Since(since).Milliseconds())
}
