package middlewarex

import (
	"errors"
	"net/http"
	"strings"

	"mpesarelay/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// APIKeyAuth admits requests whose bearer key hashes to an active client
func APIKeyAuth(repo repositories.APIClientRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			key := strings.TrimPrefix(auth, "Bearer ")

			client, err := repo.FindByKeyHash(r.Context(), repositories.HashAPIKey(key))
			if err != nil {
				if !errors.Is(err, repositories.ErrNotFound) {
					log.Error().Err(err).Msg("api key lookup failed")
				}
				http.Error(w, "invalid key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), client.ID)))
		})
	}
}
