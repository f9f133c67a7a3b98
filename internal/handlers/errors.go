package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"metaclassroom/internal/audio"
	"metaclassroom/internal/classroom"
	"metaclassroom/internal/mindgames"
	"metaclassroom/internal/service"
	"metaclassroom/internal/validation"
	"metaclassroom/internal/videogen"
)

type errorBody struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Error().Err(err).Int("status", status).Msg(logMsg)
	}

	respondJSON(w, status, errorBody{Error: userMsg})
}

// writeError maps a service error to its HTTP status. Unrecognised errors
// are logged and reported as a 500 without leaking the cause.
func writeError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: verrs.Error(), Fields: verrs})
		return
	}

	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		respondWithError(w, status, ErrInternalServerError, "request failed", err)
		return
	}
	if status == http.StatusBadGateway || status == http.StatusServiceUnavailable {
		log.Warn().Err(err).Int("status", status).Msg("external service failed")
	}
	respondJSON(w, status, errorBody{Error: msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, mindgames.ErrUnknownGame),
		errors.Is(err, mindgames.ErrNoSession),
		errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, service.ErrUnknownProvider),
		errors.Is(err, service.ErrAudiobookNotFound),
		errors.Is(err, service.ErrUnknownTopic),
		errors.Is(err, classroom.ErrUnknownStudent):
		return http.StatusNotFound, err.Error()
	case mindgames.IsValidation(err):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrEmptyText),
		errors.Is(err, videogen.ErrMissingFields),
		errors.Is(err, videogen.ErrInvalidForm):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, audio.ErrSpeechUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, videogen.ErrUpstream):
		return http.StatusBadGateway, videogen.Message(err)
	}
	return http.StatusInternalServerError, ErrInternalServerError
}

const maxBodyBytes = 1 << 20

func jsonDecoder(r *http.Request) *json.Decoder {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := jsonDecoder(r).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: ErrInvalidRequestBody})
		return false
	}
	return true
}
