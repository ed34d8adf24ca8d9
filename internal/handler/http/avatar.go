package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/task-manager/internal/avatar"
	"github.com/go-chi/chi/v5"
)

const (
	avatarFormField = "avatar"

	// multipartOverhead is the room left for multipart boundaries and part
	// headers on top of the avatar size ceiling.
	multipartOverhead = 64 << 10
)

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	if h.avatarMaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.avatarMaxBytes+multipartOverhead)
	}

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			writeError(w, r, avatar.ErrTooLarge)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			writeError(w, r, ErrMissingAvatar)
		default:
			writeError(w, r, fmt.Errorf("%w: %w", ErrMissingAvatar, err))
		}
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("reading avatar upload: %w", err))
		return
	}

	if err = h.services.AvatarService.Set(r.Context(), user.ID, header.Filename, data); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAvatar(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	if err := h.services.AvatarService.Clear(r.Context(), user.ID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getAvatar(w http.ResponseWriter, r *http.Request) {
	data, err := h.services.AvatarService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", avatar.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
