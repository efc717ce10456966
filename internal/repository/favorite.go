package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type FavoriteRepository struct {
	server *server.Server
}

func NewFavoriteRepository(s *server.Server) *FavoriteRepository {
	return &FavoriteRepository{server: s}
}

// FavoriteUniqueConstraint is violated when a user favorites a vehicle twice.
const FavoriteUniqueConstraint = "favorites_user_id_vehicle_id_key"

func (r *FavoriteRepository) CreateFavorite(ctx context.Context, userID, vehicleID uuid.UUID) (*model.Favorite, error) {
	stmt := `
		INSERT INTO favorites (user_id, vehicle_id)
		VALUES (@user_id, @vehicle_id)
		RETURNING id, user_id, vehicle_id, created_at`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":    userID,
		"vehicle_id": vehicleID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create favorite query for user_id=%s vehicle_id=%s: %w", userID, vehicleID, err)
	}

	favorite, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Favorite])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:favorites for user_id=%s vehicle_id=%s: %w", userID, vehicleID, err)
	}

	return &favorite, nil
}

// DeleteFavorite reports whether a favorite was removed.
func (r *FavoriteRepository) DeleteFavorite(ctx context.Context, userID, vehicleID uuid.UUID) (bool, error) {
	tag, err := r.server.DB.Pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = @user_id AND vehicle_id = @vehicle_id`,
		pgx.NamedArgs{"user_id": userID, "vehicle_id": vehicleID},
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite for user_id=%s vehicle_id=%s: %w", userID, vehicleID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, vehicleID uuid.UUID) (bool, error) {
	var exists bool
	err := r.server.DB.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = @user_id AND vehicle_id = @vehicle_id)`,
		pgx.NamedArgs{"user_id": userID, "vehicle_id": vehicleID},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite for user_id=%s vehicle_id=%s: %w", userID, vehicleID, err)
	}
	return exists, nil
}

// ListFavorites returns the user's favorites, newest first.
func (r *FavoriteRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithVehicle, error) {
	stmt := `
		SELECT
			f.id, f.user_id, f.vehicle_id, f.created_at,
			v.id, v.slug, v.title, v.year, v.make, v.model,
			v.price_cents, v.mileage, v.status, v.image_url
		FROM favorites f
		JOIN vehicles v ON v.id = f.vehicle_id
		WHERE f.user_id = @user_id
		ORDER BY f.created_at DESC, f.id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute list favorites query for user_id=%s: %w", userID, err)
	}

	favorites, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.FavoriteWithVehicle, error) {
		var f model.FavoriteWithVehicle
		err := row.Scan(
			&f.ID, &f.UserID, &f.VehicleID, &f.CreatedAt,
			&f.Vehicle.ID, &f.Vehicle.Slug, &f.Vehicle.Title, &f.Vehicle.Year, &f.Vehicle.Make, &f.Vehicle.Model,
			&f.Vehicle.PriceCents, &f.Vehicle.Mileage, &f.Vehicle.Status, &f.Vehicle.ImageURL,
		)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:favorites for user_id=%s: %w", userID, err)
	}

	return favorites, nil
}
