package memory

import (
	"context"

	"mpesarelay/internal/store/repositories"
)

// APIClients is a fixed set of gateway keys, typically from configuration
type APIClients struct {
	byHash map[string]repositories.APIClient
}

// NewAPIClients registers one active client per key
func NewAPIClients(keys []string) *APIClients {
	s := &APIClients{byHash: make(map[string]repositories.APIClient, len(keys))}
	for i, key := range keys {
		s.byHash[repositories.HashAPIKey(key)] = repositories.APIClient{
			ID:     int64(i + 1),
			Name:   "static",
			Status: "active",
		}
	}
	return s
}

func (s *APIClients) FindByKeyHash(_ context.Context, keyHash string) (repositories.APIClient, error) {
	c, ok := s.byHash[keyHash]
	if !ok {
		return repositories.APIClient{}, repositories.ErrNotFound
	}
	return c, nil
}

// Len reports how many keys are configured
func (s *APIClients) Len() int { return len(s.byHash) }
