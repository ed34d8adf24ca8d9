package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/service"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/models"
)

// auth is the gate in front of every protected route.
//
// It extracts the bearer token, resolves it to a user through
// [service.SessionService.Resolve] and stores both the user and the token in
// the request context via [utils.WithAuth]. A missing or malformed header, a
// bad signature, an unknown user or a revoked token all end in 401 with the
// "please authenticate" envelope. Storage failures end in 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("rejecting request without bearer token")
			writeError(w, r, service.ErrUnauthorized)
			return
		}

		ctx := r.Context()
		user, token, err := h.services.SessionService.Resolve(ctx, token)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				log.Err(err).Msg("error occurred during session lookup")
			}
			writeError(w, r, err)
			return
		}

		ctx = logger.WithUser(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(utils.WithAuth(ctx, user, token)))
	})
}

// authenticated returns the user and token stored by [Handler.auth]. Routes
// mounted behind the gate always have both.
func authenticated(r *http.Request) (models.User, string) {
	user, _ := utils.UserFromContext(r.Context())
	token, _ := utils.TokenFromContext(r.Context())
	return user, token
}
