package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type SessionRepository struct {
	server *server.Server
}

func NewSessionRepository(s *server.Server) *SessionRepository {
	return &SessionRepository{server: s}
}

const sessionColumns = `id, user_id, expires_at, created_at, user_agent, ip`

func (r *SessionRepository) CreateSession(ctx context.Context, userID uuid.UUID, expiresAt time.Time, userAgent, ip *string) (*model.Session, error) {
	stmt := `
		INSERT INTO sessions (user_id, expires_at, user_agent, ip)
		VALUES (@user_id, @expires_at, @user_agent, @ip)
		RETURNING ` + sessionColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":    userID,
		"expires_at": expiresAt,
		"user_agent": userAgent,
		"ip":         ip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create session query for user_id=%s: %w", userID, err)
	}

	session, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Session])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:sessions for user_id=%s: %w", userID, err)
	}

	return &session, nil
}

func (r *SessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	stmt := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get session query for session_id=%s: %w", id, err)
	}

	session, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Session])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:sessions for session_id=%s: %w", id, err)
	}

	return &session, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete session_id=%s: %w", id, err)
	}
	return nil
}

// DeleteUserSessions revokes every session of a user and returns the removed
// ids so callers can evict cached lookups.
func (r *SessionRepository) DeleteUserSessions(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.server.DB.Pool.Query(ctx,
		`DELETE FROM sessions WHERE user_id = @user_id RETURNING id`,
		pgx.NamedArgs{"user_id": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete sessions for user_id=%s: %w", userID, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:sessions for user_id=%s: %w", userID, err)
	}

	return ids, nil
}

func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= @now`, pgx.NamedArgs{"now": now})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
