package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/domain"
)

// UserStore resolves token subjects to live user records.
type UserStore interface {
	// GetActiveWithSector returns the user only while both the user and
	// its sector are active.
	GetActiveWithSector(ctx context.Context, id int64) (*domain.User, error)
}

// Middleware returns a middleware that authenticates requests with a Bearer
// token. The token subject is re-resolved from the store on every request,
// so deactivating a user or its sector revokes access immediately even for
// tokens that have not expired.
func Middleware(issuer *Issuer, store UserStore, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractBearerToken(r)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				writeAuthError(w, err)
				return
			}

			user, err := store.GetActiveWithSector(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					writeAuthError(w, ErrUserNotFound)
					return
				}
				logger.Error().Err(err).Int64("user_id", claims.UserID).Msg("failed to resolve token user")
				writeAuthError(w, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// extractBearerToken parses an "Authorization: Bearer <token>" header.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMissingToken
	}

	return parts[1], nil
}

// writeAuthError writes the JSON error envelope with a 401 status.
func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": err.Error(),
	})
}
