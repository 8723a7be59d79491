package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrNotFound is returned when no active row matches
var ErrNotFound = errors.New("not found")

// APIClient is a caller allowed to use the relay gateway
type APIClient struct {
	ID     int64
	Name   string
	Status string
}

// APIClientRepository defines the contract for gateway client lookups
type APIClientRepository interface {
	FindByKeyHash(ctx context.Context, keyHash string) (APIClient, error)
}

// HashAPIKey is how keys are stored: hex(sha256(key))
func HashAPIKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}

// APIClientStore also provisions clients and keys
type APIClientStore interface {
	APIClientRepository
	CreateAPIClient(ctx context.Context, name string) (APIClient, error)
	InsertAPIKey(ctx context.Context, clientID int64, keyName, keyHash string) (int64, error)
}
