package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// Readiness is implemented by *mpesa.Client
type Readiness interface {
	Derived() bool
	Ready(ctx context.Context) error
}

// Health reports whether the security credential can be used yet
func Health(env string, rd Readiness) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, status := "pending", http.StatusServiceUnavailable
		if rd.Derived() {
			state, status = "ready", http.StatusOK
			if err := rd.Ready(r.Context()); err != nil {
				state, status = "failed", http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":              http.StatusText(status),
			"environment":         env,
			"security_credential": state,
		})
	}
}
