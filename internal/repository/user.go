package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

const userColumns = `id, name, email, email_verified, image, phone, password_hash, created_at, updated_at`

func (r *UserRepository) CreateUser(ctx context.Context, name *string, email, passwordHash string) (*model.User, error) {
	stmt := `
		INSERT INTO users (name, email, password_hash)
		VALUES (@name, @email, @password_hash)
		RETURNING ` + userColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"name":          name,
		"email":         email,
		"password_hash": passwordHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create user query for email=%s: %w", email, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for email=%s: %w", email, err)
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	stmt := `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get user query for user_id=%s: %w", id, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for user_id=%s: %w", id, err)
	}

	return &user, nil
}

// GetUserByEmail expects an already normalized address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	stmt := `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get user query for email=%s: %w", email, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for email=%s: %w", email, err)
	}

	return &user, nil
}

// UpdateProfile sets only the non-nil fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, image *string) (*model.User, error) {
	stmt := `
		UPDATE users
		SET
			name  = COALESCE(@name, name),
			phone = COALESCE(@phone, phone),
			image = COALESCE(@image, image)
		WHERE id = @id
		RETURNING ` + userColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":    id,
		"name":  name,
		"phone": phone,
		"image": image,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update profile query for user_id=%s: %w", id, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for user_id=%s: %w", id, err)
	}

	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	stmt := `UPDATE users SET password_hash = @password_hash WHERE id = @id`

	tag, err := r.server.DB.Pool.Exec(ctx, stmt, pgx.NamedArgs{
		"id":            id,
		"password_hash": passwordHash,
	})
	if err != nil {
		return fmt.Errorf("failed to execute update password query for user_id=%s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update password in table:users for user_id=%s: %w", id, pgx.ErrNoRows)
	}

	return nil
}
