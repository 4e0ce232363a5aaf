package handler

import (
	"encoding/json"
	"net/http"

	"tradesim/internal/domain"
	"tradesim/internal/service"
)

// SessionHandler handles the REST endpoints for session management.
type SessionHandler struct {
	registry *service.Registry
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(registry *service.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

// Root handles GET /. The platform is driven over WebSockets; this is a
// liveness probe for humans.
func (h *SessionHandler) Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "trading is active",
		"comment": "this is only for accessing trading platform mostly via websockets",
	})
}

// Defaults handles GET /traders/defaults: the default value of every
// session-config field, keyed by its wire name.
func (h *SessionHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	defaults := domain.DefaultSessionConfig()

	// Round-trip through JSON so the keys match the wire field names.
	raw, err := json.Marshal(defaults)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to build defaults")
		return
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to build defaults")
		return
	}

	WriteSuccess(w, http.StatusOK, "", data)
}

// Create handles POST /traders/create. The request body holds overrides
// applied on top of the defaults; omitted fields keep their defaults.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	cfg := domain.DefaultSessionConfig()
	if err := ParseJSON(r, &cfg); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := h.registry.Create(cfg)

	WriteSuccess(w, http.StatusCreated, "New trader created", map[string]string{
		"trader_uuid": sess.ID,
	})
}

// List handles GET /traders/list.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, "List of traders", map[string]any{
		"traders": h.registry.List(),
	})
}
