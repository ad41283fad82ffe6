package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jasamarga/toll-ops-gateway/internal/store"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

// CredentialRepo is the Postgres-backed DeviceStore. Used instead of the
// in-memory store when the gateway runs with more than one replica, so a
// browser whose cookie was lost can still be re-synchronized from any
// instance.
type CredentialRepo struct {
	db *pgxpool.Pool
}

func NewCredentialRepo(db *pgxpool.Pool) *CredentialRepo {
	return &CredentialRepo{
		db: db,
	}
}

var _ store.DeviceStore = (*CredentialRepo)(nil)

func (r *CredentialRepo) Get(ctx context.Context, deviceID string) (*store.Credential, error) {
	const op = "CredentialRepo.Get"
	query := `
		SELECT COALESCE(token, ''), COALESCE(user_json, '')
		FROM dashboard_credentials
		WHERE device_id = $1;`

	var cred store.Credential
	var userJSON string
	if err := r.db.QueryRow(ctx, query, deviceID).Scan(&cred.Token, &userJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	if userJSON != "" {
		cred.UserJSON = []byte(userJSON)
	}

	return &cred, nil
}

func (r *CredentialRepo) SetToken(ctx context.Context, deviceID, token string) error {
	const op = "CredentialRepo.SetToken"
	query := `
		INSERT INTO dashboard_credentials(device_id, token, updated_at)
		VALUES($1, $2, now())
		ON CONFLICT (device_id)
		DO UPDATE SET token = EXCLUDED.token, updated_at = now();`

	if _, err := r.db.Exec(ctx, query, deviceID, token); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return nil
}

func (r *CredentialRepo) SetUser(ctx context.Context, deviceID string, userJSON []byte) error {
	const op = "CredentialRepo.SetUser"
	query := `
		INSERT INTO dashboard_credentials(device_id, user_json, updated_at)
		VALUES($1, $2, now())
		ON CONFLICT (device_id)
		DO UPDATE SET user_json = EXCLUDED.user_json, updated_at = now();`

	if _, err := r.db.Exec(ctx, query, deviceID, string(userJSON)); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return nil
}

func (r *CredentialRepo) Clear(ctx context.Context, deviceID string) error {
	const op = "CredentialRepo.Clear"
	query := `
		DELETE FROM dashboard_credentials
		WHERE device_id = $1;`

	if _, err := r.db.Exec(ctx, query, deviceID); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return nil
}
