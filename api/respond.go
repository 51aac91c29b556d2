package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmedina-dev/inkwell-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps an error onto an HTTP response. Expected failures carry
// their own status code and message; anything else is logged in full
// server-side and surfaced to the caller as an opaque 500 body.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, map[string]interface{}{
			"message": "Server error",
			"status":  "error",
		})
		return
	}

	response := map[string]interface{}{
		"message": apiErr.Error(),
		"status":  "error",
	}

	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	// Cause carries internal detail (driver errors, token parse failures);
	// it goes to the log, never to the wire.
	if apiErr.Cause != nil {
		r.logger.Error().
			Int("status", apiErr.StatusCode).
			Str("cause", apiErr.GetFullError()).
			Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}
