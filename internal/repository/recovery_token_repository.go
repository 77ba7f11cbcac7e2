package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RecoveryToken represents stored password recovery tokens. Delivery of the
// recovery link is an external concern; this layer only persists the token.
type RecoveryToken struct {
	ID        string
	Username  string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// RecoveryTokenRepository manages recovery token persistence.
type RecoveryTokenRepository interface {
	Create(ctx context.Context, token *RecoveryToken) error
	GetByToken(ctx context.Context, token string) (*RecoveryToken, error)
	MarkUsed(ctx context.Context, id string) error
}

type recoveryTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRecoveryTokenRepository constructs repository.
func NewRecoveryTokenRepository(pool *pgxpool.Pool) RecoveryTokenRepository {
	return &recoveryTokenRepository{pool: pool}
}

func (r *recoveryTokenRepository) Create(ctx context.Context, token *RecoveryToken) error {
	const query = `
        INSERT INTO recovery_tokens (username, token, expires_at)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		token.Username,
		token.Token,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *recoveryTokenRepository) GetByToken(ctx context.Context, tokenStr string) (*RecoveryToken, error) {
	const query = `
        SELECT id, username, token, expires_at, used_at, created_at
        FROM recovery_tokens WHERE token=$1`
	var token RecoveryToken
	if err := r.pool.QueryRow(ctx, query, tokenStr).Scan(
		&token.ID,
		&token.Username,
		&token.Token,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *recoveryTokenRepository) MarkUsed(ctx context.Context, id string) error {
	const query = `
        UPDATE recovery_tokens SET used_at=NOW()
        WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
