package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/service"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.UserService.Register(r.Context(), req.User())
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("user signed up")
	utils.WriteJSON(w, models.AuthResponse{User: user, Token: token}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		// a malformed body is reported like any other failed login
		writeError(w, r, service.ErrInvalidCredentials)
		return
	}

	user, token, err := h.services.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{User: user, Token: token}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user, token := authenticated(r)

	if err := h.services.SessionService.Revoke(r.Context(), user, token); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	if err := h.services.SessionService.RevokeAll(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	var payload service.Payload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.services.UserService.Update(r.Context(), user, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	user, _ := authenticated(r)

	deleted, err := h.services.UserService.Delete(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", deleted.ID).Msg("user deleted")
	utils.WriteJSON(w, deleted, http.StatusOK)
}

// decodeJSON decodes the request body into dst. A body that is empty,
// malformed or of the wrong JSON type yields ErrInvalidJSON.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
