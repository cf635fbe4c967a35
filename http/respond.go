package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"debt-planner/repository"
	"debt-planner/service"

	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// decodeJSON reads a JSON body into dst. On failure the response has been
// written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeJSON(w, r, http.StatusUnsupportedMediaType, errorBody{Error: "Content-Type must be application/json"})
		return false
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		log.WithField("path", r.URL.Path).Debugf("Error decoding request body: %v", err)
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	// Encode into a buffer first so a failure can still change the status.
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithField("path", r.URL.Path).Errorf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithField("path", r.URL.Path).Warnf("Error writing response: %v", err)
	}
}

// writeError maps service and repository errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case service.IsValidation(err):
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, repository.ErrDebtNotFound):
		writeJSON(w, r, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		log.WithField("path", r.URL.Path).Errorf("request failed: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
