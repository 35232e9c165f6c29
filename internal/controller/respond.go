package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/blooddrive-backend/internal/errors"
	"github.com/unclebandit/blooddrive-backend/internal/middleware"
)

// Envelope wraps every JSON response body.
type Envelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type PageInfo struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// PagedEnvelope is Envelope plus the position of the returned window.
type PagedEnvelope struct {
	OK         bool     `json:"ok"`
	Data       any      `json:"data"`
	Pagination PageInfo `json:"pagination"`
	Message    string   `json:"message"`
}

var errInvalidID = errors.New("identifier must be an integer")

// writeJSON sends body with status. The header is already out when
// encoding fails, so the error only goes to the request logger.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("failed to write response body")
	}
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	writeJSON(w, r, status, Envelope{OK: true, Data: data, Message: message})
}

// respondError maps err onto a status code. Storage failures are logged
// with their cause and reported without detail.
func respondError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case appErrors.IsNotFound(err):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, appErrors.ErrIDMismatch), appErrors.IsValidation(err), errors.Is(err, errInvalidID):
		status, message = http.StatusBadRequest, err.Error()
	default:
		log.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("cause", appErrors.StorageCause(err)).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeJSON(w, r, status, Envelope{OK: false, Data: nil, Message: message})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusBadRequest, Envelope{OK: false, Data: nil, Message: message})
}

func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
