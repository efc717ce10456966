package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type VerificationTokenRepository struct {
	server *server.Server
}

func NewVerificationTokenRepository(s *server.Server) *VerificationTokenRepository {
	return &VerificationTokenRepository{server: s}
}

// ReplaceToken drops any outstanding token for the identifier and purpose and
// stores the new one, so only the latest emailed link works.
func (r *VerificationTokenRepository) ReplaceToken(ctx context.Context, token model.VerificationToken) error {
	return pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{
			"identifier": token.Identifier,
			"token_hash": token.TokenHash,
			"purpose":    token.Purpose,
			"expires_at": token.ExpiresAt,
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM verification_tokens
			WHERE identifier = @identifier AND purpose = @purpose`, args); err != nil {
			return fmt.Errorf("failed to clear tokens for identifier=%s: %w", token.Identifier, err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO verification_tokens (identifier, token_hash, purpose, expires_at)
			VALUES (@identifier, @token_hash, @purpose, @expires_at)`, args); err != nil {
			return fmt.Errorf("failed to insert token for identifier=%s: %w", token.Identifier, err)
		}

		return nil
	})
}

// ConsumeToken deletes the matching token and returns it. A token can be
// consumed once; a second call gets pgx.ErrNoRows.
func (r *VerificationTokenRepository) ConsumeToken(ctx context.Context, identifier, tokenHash, purpose string) (*model.VerificationToken, error) {
	stmt := `
		DELETE FROM verification_tokens
		WHERE identifier = @identifier AND token_hash = @token_hash AND purpose = @purpose
		RETURNING identifier, token_hash, purpose, expires_at, created_at`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"identifier": identifier,
		"token_hash": tokenHash,
		"purpose":    purpose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute consume token query for identifier=%s: %w", identifier, err)
	}

	token, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.VerificationToken])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:verification_tokens for identifier=%s: %w", identifier, err)
	}

	return &token, nil
}
