package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/task-manager/internal/avatar"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/service"
	"github.com/MKhiriev/task-manager/internal/store"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:   http.StatusBadRequest,
	ErrInvalidGZip:   http.StatusBadRequest,
	ErrMissingAvatar: http.StatusBadRequest,
	ErrInvalidQuery:  http.StatusBadRequest,
	ErrRouteNotFound: http.StatusNotFound,

	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrValidation:            http.StatusBadRequest,
	service.ErrInvalidCredentials:    http.StatusBadRequest,
	service.ErrInvalidUpdates:        http.StatusBadRequest,
	service.ErrInvalidFieldValue:     http.StatusBadRequest,
	service.ErrInvalidTaskFilter:     http.StatusBadRequest,
	service.ErrVersionIsNotSpecified: http.StatusBadRequest,
	service.ErrUnauthorized:          http.StatusUnauthorized,

	// avatar rejections are reported as 404 with the rejection message
	avatar.ErrUnsupportedFormat: http.StatusNotFound,
	avatar.ErrTooLarge:          http.StatusNotFound,
	avatar.ErrEmpty:             http.StatusNotFound,
	avatar.ErrUndecodable:       http.StatusNotFound,
	avatar.ErrTooManyPixels:     http.StatusNotFound,

	store.ErrEmailAlreadyExists: http.StatusBadRequest,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrAvatarNotFound:     http.StatusNotFound,
	store.ErrTaskNotFound:       http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes it in the error envelope. Internal errors
// never leak their message to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	message := err.Error()

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "writeError").Msg("request failed")
		message = http.StatusText(status)
	} else {
		log.Debug().Err(err).Int("status", status).Send()
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
