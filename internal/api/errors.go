package api

import (
	"errors"
	"net/http"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/constants"
	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/logging"
)

var kindStatus = map[flightops.ErrorKind]int{
	flightops.KindNotFound:     http.StatusNotFound,
	flightops.KindInvalidInput: http.StatusBadRequest,
	flightops.KindConflict:     http.StatusConflict,
}

// respondServiceError maps engine error kinds onto HTTP statuses. Anything else is
// logged and reported as a 500 without leaking its text.
func respondServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error, action string) {
	var engineErr *flightops.Error
	if errors.As(err, &engineErr) {
		message := engineErr.Message
		if message == "" {
			message = constants.GetEngineErrorMessage(string(engineErr.Kind))
		}
		common.RespondCodedError(w, initTime, string(engineErr.Kind), message, kindStatus[engineErr.Kind])
		return
	}

	logging.Error("Request failed",
		"action", action,
		"request_id", requestID(r),
		"error", err,
	)
	common.RespondCodedError(w, initTime, constants.ErrCodeInternal, "Failed to "+action, http.StatusInternalServerError)
}
