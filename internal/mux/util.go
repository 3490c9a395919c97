package mux

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/room"
	"texasholdem-server/pkg/store"

	"github.com/sirupsen/logrus"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// statusForError maps errors from the table and its dealer to an HTTP status
func statusForError(err error) int {
	var invalidErr texasholdem.InvalidActionError
	var optionsErr texasholdem.OptionsError

	switch {
	case errors.Is(err, store.ErrGameNotFound),
		errors.Is(err, texasholdem.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrNotSeated):
		return http.StatusForbidden
	case errors.Is(err, texasholdem.ErrGameOver),
		errors.Is(err, texasholdem.ErrNotPlayersTurn),
		errors.Is(err, texasholdem.ErrHandInProgress),
		errors.Is(err, store.ErrStaleSnapshot):
		return http.StatusConflict
	case errors.As(err, &invalidErr),
		errors.As(err, &optionsErr):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrDealerClosed),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func writeTableError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusForError(err), err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).WithField("type", "exception").Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
