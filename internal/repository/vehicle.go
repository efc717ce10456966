package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type VehicleRepository struct {
	server *server.Server
}

func NewVehicleRepository(s *server.Server) *VehicleRepository {
	return &VehicleRepository{server: s}
}

const vehicleColumns = `id, slug, title, year, make, model, trim, chassis, body_style, price_cents,
	mileage, status, image_url, listed_at, created_at, updated_at`

func (r *VehicleRepository) GetVehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	stmt := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get vehicle query for vehicle_id=%s: %w", id, err)
	}

	vehicle, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Vehicle])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:vehicles for vehicle_id=%s: %w", id, err)
	}

	return &vehicle, nil
}

func (r *VehicleRepository) VehicleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.server.DB.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM vehicles WHERE id = @id)`,
		pgx.NamedArgs{"id": id},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle_id=%s: %w", id, err)
	}
	return exists, nil
}

// ListCandidates returns every available vehicle with its popularity, the
// number of recorded views plus the number of favorites.
func (r *VehicleRepository) ListCandidates(ctx context.Context) ([]model.Candidate, error) {
	stmt := `
		SELECT
			v.id, v.slug, v.title, v.year, v.make, v.model, v.chassis, v.body_style,
			v.price_cents, v.mileage, v.image_url, v.listed_at,
			COALESCE(vv.views, 0) + COALESCE(f.favorites, 0) AS popularity
		FROM vehicles v
		LEFT JOIN (
			SELECT vehicle_id, COUNT(*) AS views FROM vehicle_views GROUP BY vehicle_id
		) vv ON vv.vehicle_id = v.id
		LEFT JOIN (
			SELECT vehicle_id, COUNT(*) AS favorites FROM favorites GROUP BY vehicle_id
		) f ON f.vehicle_id = v.id
		WHERE v.status = @status
		ORDER BY v.listed_at DESC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"status": model.VehicleStatusAvailable})
	if err != nil {
		return nil, fmt.Errorf("failed to execute list candidates query: %w", err)
	}

	candidates, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Candidate])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:vehicles: %w", err)
	}

	return candidates, nil
}

// HistoryVehicle is a vehicle the user favorited or viewed.
type HistoryVehicle struct {
	model.Vehicle
	Favorited bool `db:"favorited"`
}

// ListUserHistory returns the user's favorited vehicles and their most recent
// distinct views, at most limit of the latter.
func (r *VehicleRepository) ListUserHistory(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryVehicle, error) {
	stmt := `
		WITH favorite_ids AS (
			SELECT vehicle_id FROM favorites WHERE user_id = @user_id
		),
		viewed_ids AS (
			SELECT vehicle_id
			FROM vehicle_views
			WHERE user_id = @user_id
			GROUP BY vehicle_id
			ORDER BY MAX(viewed_at) DESC
			LIMIT @limit
		)
		SELECT
			v.id, v.slug, v.title, v.year, v.make, v.model, v.trim, v.chassis, v.body_style,
			v.price_cents, v.mileage, v.status, v.image_url, v.listed_at, v.created_at, v.updated_at,
			(v.id IN (SELECT vehicle_id FROM favorite_ids)) AS favorited
		FROM vehicles v
		WHERE v.id IN (SELECT vehicle_id FROM favorite_ids)
		   OR v.id IN (SELECT vehicle_id FROM viewed_ids)`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id": userID,
		"limit":   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute list history query for user_id=%s: %w", userID, err)
	}

	history, err := pgx.CollectRows(rows, pgx.RowToStructByName[HistoryVehicle])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:vehicles for user_id=%s: %w", userID, err)
	}

	return history, nil
}

// UpsertVehicle inserts or updates a vehicle keyed by slug and reports
// whether a new row was created.
func (r *VehicleRepository) UpsertVehicle(ctx context.Context, v *model.Vehicle) (bool, error) {
	stmt := `
		INSERT INTO vehicles (slug, title, year, make, model, trim, chassis, body_style,
			price_cents, mileage, status, image_url, listed_at)
		VALUES (@slug, @title, @year, @make, @model, @trim, @chassis, @body_style,
			@price_cents, @mileage, @status, @image_url, COALESCE(@listed_at, NOW()))
		ON CONFLICT (slug) DO UPDATE SET
			title       = EXCLUDED.title,
			year        = EXCLUDED.year,
			make        = EXCLUDED.make,
			model       = EXCLUDED.model,
			trim        = EXCLUDED.trim,
			chassis     = EXCLUDED.chassis,
			body_style  = EXCLUDED.body_style,
			price_cents = EXCLUDED.price_cents,
			mileage     = EXCLUDED.mileage,
			status      = EXCLUDED.status,
			image_url   = EXCLUDED.image_url
		RETURNING id, (xmax = 0) AS inserted`

	var listedAt any
	if !v.ListedAt.IsZero() {
		listedAt = v.ListedAt
	}

	var inserted bool
	err := r.server.DB.Pool.QueryRow(ctx, stmt, pgx.NamedArgs{
		"slug":        v.Slug,
		"title":       v.Title,
		"year":        v.Year,
		"make":        v.Make,
		"model":       v.Model,
		"trim":        v.Trim,
		"chassis":     v.Chassis,
		"body_style":  v.BodyStyle,
		"price_cents": v.PriceCents,
		"mileage":     v.Mileage,
		"status":      v.Status,
		"image_url":   v.ImageURL,
		"listed_at":   listedAt,
	}).Scan(&v.ID, &inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert vehicle slug=%s into table:vehicles: %w", v.Slug, err)
	}

	return inserted, nil
}

func (r *VehicleRepository) RecordView(ctx context.Context, vehicleID uuid.UUID, userID *uuid.UUID) error {
	_, err := r.server.DB.Pool.Exec(ctx,
		`INSERT INTO vehicle_views (vehicle_id, user_id) VALUES (@vehicle_id, @user_id)`,
		pgx.NamedArgs{"vehicle_id": vehicleID, "user_id": userID},
	)
	if err != nil {
		return fmt.Errorf("failed to record view for vehicle_id=%s: %w", vehicleID, err)
	}
	return nil
}
