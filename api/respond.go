package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteSuccess writes the uniform success envelope: {"success": true} merged
// with the supplied payload fields.
func (r Responder) WriteSuccess(w http.ResponseWriter, statusCode int, payload map[string]any) {
	body := make(map[string]any, len(payload)+1)
	body["success"] = true
	for key, value := range payload {
		body[key] = value
	}
	r.writeJSON(w, statusCode, body)
}

// WriteError writes the failure envelope {"success": false, "error": ...}.
// Errors that are not ApiErr are logged and mapped to a generic 500 so
// internal error text never reaches the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal server error",
		})
		return
	}

	if apiErr.Cause != nil {
		r.logger.Error().Err(apiErr.Cause).Int("status", apiErr.StatusCode).Msg(apiErr.Error())
	}

	r.writeJSON(w, apiErr.StatusCode, map[string]any{
		"success": false,
		"error":   apiErr.Error(),
	})
}

func (r Responder) writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}
