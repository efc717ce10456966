package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/repository"
	"github.com/magnetco/enthusiastauto-sub003/internal/sqlerr"
)

var errVehicleNotFound = errs.NewNotFoundError("Vehicle not found", true, errs.Code("VEHICLE_NOT_FOUND"))

type FavoriteService struct {
	favorites FavoriteStore
	vehicles  VehicleStore
}

func NewFavoriteService(favorites FavoriteStore, vehicles VehicleStore) *FavoriteService {
	return &FavoriteService{favorites: favorites, vehicles: vehicles}
}

// FavoriteStatus answers whether a user has saved a vehicle.
type FavoriteStatus struct {
	VehicleID uuid.UUID `json:"vehicleId"`
	Favorited bool      `json:"favorited"`
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithVehicle, error) {
	favorites, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []model.FavoriteWithVehicle{}
	}
	return favorites, nil
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID, vehicleID uuid.UUID) (*model.Favorite, error) {
	exists, err := s.vehicles.VehicleExists(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errVehicleNotFound
	}

	favorite, err := s.favorites.CreateFavorite(ctx, userID, vehicleID)
	if err != nil {
		switch {
		case sqlerr.IsUniqueViolation(err, repository.FavoriteUniqueConstraint):
			return nil, errs.NewConflictError("Vehicle is already in your favorites", true, errs.Code("FAVORITE_ALREADY_EXISTS"))
		case sqlerr.IsForeignKeyViolation(err, ""):
			// The vehicle was removed between the check and the insert.
			return nil, errVehicleNotFound
		}
		return nil, err
	}

	return favorite, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, vehicleID uuid.UUID) error {
	removed, err := s.favorites.DeleteFavorite(ctx, userID, vehicleID)
	if err != nil {
		return err
	}
	if !removed {
		return errs.NewNotFoundError("Favorite not found", true, errs.Code("FAVORITE_NOT_FOUND"))
	}
	return nil
}

func (s *FavoriteService) GetFavoriteStatus(ctx context.Context, userID, vehicleID uuid.UUID) (*FavoriteStatus, error) {
	favorited, err := s.favorites.IsFavorite(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}
	return &FavoriteStatus{VehicleID: vehicleID, Favorited: favorited}, nil
}
