package apiclient

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"mpesarelay/internal/store/repositories"
)

// OnboardingRequest names the client and, optionally, its first key
type OnboardingRequest struct {
	Name       string `json:"name"`
	APIKeyName string `json:"apiKeyName,omitempty"`
}

// OnboardingResponse carries the plaintext key; only its hash is stored
type OnboardingResponse struct {
	ClientID   int64  `json:"clientId"`
	APIKey     string `json:"apiKey"`
	APIKeyName string `json:"apiKeyName"`
}

// Service provisions gateway clients
type Service struct {
	store repositories.APIClientStore
}

func NewService(store repositories.APIClientStore) *Service {
	return &Service{store: store}
}

// Onboard creates a client and issues its first API key
func (s *Service) Onboard(ctx context.Context, req OnboardingRequest) (*OnboardingResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ServiceError{Op: "validate", Err: fmt.Errorf("client name is required")}
	}

	client, err := s.store.CreateAPIClient(ctx, name)
	if err != nil {
		return nil, &ServiceError{Op: "create_client", Err: err}
	}

	key, keyName, err := s.IssueKey(ctx, client.ID, req.APIKeyName)
	if err != nil {
		return nil, err
	}

	return &OnboardingResponse{ClientID: client.ID, APIKey: key, APIKeyName: keyName}, nil
}

// IssueKey generates and stores another key for an existing client
func (s *Service) IssueKey(ctx context.Context, clientID int64, keyName string) (string, string, error) {
	if keyName == "" {
		keyName = "default"
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", "", &ServiceError{Op: "create_api_key", Err: fmt.Errorf("failed to generate API key: %w", err)}
	}
	apiKey := "pk_" + hex.EncodeToString(keyBytes)

	if _, err := s.store.InsertAPIKey(ctx, clientID, keyName, repositories.HashAPIKey(apiKey)); err != nil {
		return "", "", &ServiceError{Op: "create_api_key", Err: err}
	}

	return apiKey, keyName, nil
}

type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("apiclient service [%s]: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
