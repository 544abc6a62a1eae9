package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"aeroportal/flightops/internal/auth"
	"aeroportal/flightops/internal/common"
)

// maxBodyBytes caps request bodies; logbook entries are the largest payload.
const maxBodyBytes = 1 << 20

func requestID(r *http.Request) string {
	return auth.GetRequestID(r.Context())
}

// decodeBody reads a JSON body into dst and answers 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, initTime time.Time, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// intParam parses a path or query value and answers 400 itself on failure.
func intParam(w http.ResponseWriter, initTime time.Time, name, value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		common.RespondError(w, initTime, nil, name+" must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}
