package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type SellSubmissionRepository struct {
	server *server.Server
}

func NewSellSubmissionRepository(s *server.Server) *SellSubmissionRepository {
	return &SellSubmissionRepository{server: s}
}

const sellSubmissionColumns = `id, user_id, name, email, phone, year, make, model, mileage, vin,
	condition, asking_price_cents, description, photo_urls, status, created_at, updated_at`

func (r *SellSubmissionRepository) CreateSellSubmission(ctx context.Context, sub *model.SellSubmission) (*model.SellSubmission, error) {
	stmt := `
		INSERT INTO sell_submissions (user_id, name, email, phone, year, make, model, mileage,
			vin, condition, asking_price_cents, description, photo_urls)
		VALUES (@user_id, @name, @email, @phone, @year, @make, @model, @mileage,
			@vin, @condition, @asking_price_cents, @description, @photo_urls)
		RETURNING ` + sellSubmissionColumns

	photos := sub.PhotoURLs
	if photos == nil {
		photos = []string{}
	}

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":            sub.UserID,
		"name":               sub.Name,
		"email":              sub.Email,
		"phone":              sub.Phone,
		"year":               sub.Year,
		"make":               sub.Make,
		"model":              sub.Model,
		"mileage":            sub.Mileage,
		"vin":                sub.VIN,
		"condition":          sub.Condition,
		"asking_price_cents": sub.AskingPriceCents,
		"description":        sub.Description,
		"photo_urls":         photos,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create sell submission query for email=%s: %w", sub.Email, err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SellSubmission])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:sell_submissions for email=%s: %w", sub.Email, err)
	}

	return &created, nil
}

func (r *SellSubmissionRepository) ListSellSubmissions(ctx context.Context, userID uuid.UUID) ([]model.SellSubmission, error) {
	stmt := `SELECT ` + sellSubmissionColumns + `
		FROM sell_submissions
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute list sell submissions query for user_id=%s: %w", userID, err)
	}

	submissions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SellSubmission])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:sell_submissions for user_id=%s: %w", userID, err)
	}

	return submissions, nil
}
