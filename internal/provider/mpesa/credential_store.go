package mpesa

import (
	"context"
	"fmt"

	"mpesarelay/internal/domain/credential"
	"mpesarelay/internal/provider"

	"github.com/rs/zerolog/log"
)

// credentialStore holds the derived security credential. value and err are
// written once, before done is closed, and only read after it.
type credentialStore struct {
	done  chan struct{}
	value string
	err   error
}

func newCredentialStore(creds credential.Credentials, env credential.Environment) *credentialStore {
	s := &credentialStore{done: make(chan struct{})}

	go func() {
		defer close(s.done)

		s.value, s.err = credential.Derive(creds, env)
		if s.err != nil {
			log.Error().
				Err(s.err).
				Str("provider", providerName).
				Str("environment", string(env)).
				Msg("failed to derive security credential")
			return
		}
		log.Debug().
			Str("provider", providerName).
			Str("environment", string(env)).
			Msg("security credential ready")
	}()

	return s
}

func (s *credentialStore) get(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
	}
	if s.err != nil {
		return "", fmt.Errorf("%w: %w", provider.ErrCredentialUnavailable, s.err)
	}
	return s.value, nil
}
