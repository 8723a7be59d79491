package postgres

import (
	"context"
	"errors"

	"mpesarelay/internal/store/repositories"

	"github.com/jackc/pgx/v5"
)

// FindByKeyHash resolves an active gateway client from its hashed API key
func (r *Repo) FindByKeyHash(ctx context.Context, keyHash string) (repositories.APIClient, error) {
	row := r.db.QueryRow(ctx, `SELECT c.id, c.name, c.status
		FROM api_client_keys k
		JOIN api_clients c ON c.id=k.client_id
		WHERE k.key_hash=$1 AND k.revoked_at IS NULL AND c.status='active'`, keyHash)
	var c repositories.APIClient
	if err := row.Scan(&c.ID, &c.Name, &c.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repositories.APIClient{}, repositories.ErrNotFound
		}
		return repositories.APIClient{}, err
	}
	return c, nil
}

// CreateAPIClient inserts an active client
func (r *Repo) CreateAPIClient(ctx context.Context, name string) (repositories.APIClient, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO api_clients(name) VALUES($1) RETURNING id, name, status`, name)
	var c repositories.APIClient
	if err := row.Scan(&c.ID, &c.Name, &c.Status); err != nil {
		return repositories.APIClient{}, err
	}
	return c, nil
}

// InsertAPIKey stores a hashed API key for a client.
func (r *Repo) InsertAPIKey(ctx context.Context, clientID int64, keyName, keyHash string) (int64, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO api_client_keys(client_id, key_hash, name) VALUES($1,$2,$3) RETURNING id`,
		clientID, keyHash, keyName)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

var _ repositories.APIClientStore = (*Repo)(nil)
