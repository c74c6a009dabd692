package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Limite dos corpos das chamadas internas; o webhook tem limite próprio.
const maxRequestBodyBytes int64 = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(v)
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// writeDomainError responde 404/400 para erros de negócio. Devolve false se err não é um.
func writeDomainError(w http.ResponseWriter, err error) bool {
	var de *usecase.DomainError
	if !errors.As(err, &de) {
		return false
	}

	status := http.StatusBadRequest
	if errors.Is(err, usecase.ErrUnknownProvider) || errors.Is(err, entity.ErrLeadNotFound) {
		status = http.StatusNotFound
	}
	writeError(w, status, de.Code)
	return true
}

// getClientIP: primeiro IP do X-Forwarded-For, depois CF-Connecting-IP,
// depois o endereço remoto sem a porta.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if cf := r.Header.Get("CF-Connecting-IP"); cf != "" {
		return strings.TrimSpace(cf)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
