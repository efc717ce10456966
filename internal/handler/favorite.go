package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
	"github.com/magnetco/enthusiastauto-sub003/internal/validation"
)

type FavoriteHandler struct {
	Handler
	favorites *service.FavoriteService
}

func NewFavoriteHandler(s *server.Server, favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		Handler:   NewHandler(s),
		favorites: favorites,
	}
}

type AddFavoriteRequest struct {
	VehicleID string `json:"vehicleId" validate:"required,uuid"`
}

func (r *AddFavoriteRequest) Validate() error {
	return validation.Struct(r)
}

// FavoriteVehicleRequest addresses a favorite by its vehicle.
type FavoriteVehicleRequest struct {
	VehicleID string `param:"vehicleId" validate:"required,uuid"`
}

func (r *FavoriteVehicleRequest) Validate() error {
	return validation.Struct(r)
}

func (h *FavoriteHandler) ListFavorites(c echo.Context, _ *EmptyRequest) ([]model.FavoriteWithVehicle, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	return h.favorites.ListFavorites(c.Request().Context(), userID)
}

func (h *FavoriteHandler) AddFavorite(c echo.Context, req *AddFavoriteRequest) (*model.Favorite, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	return h.favorites.AddFavorite(c.Request().Context(), userID, uuid.MustParse(req.VehicleID))
}

func (h *FavoriteHandler) GetFavoriteStatus(c echo.Context, req *FavoriteVehicleRequest) (*service.FavoriteStatus, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	return h.favorites.GetFavoriteStatus(c.Request().Context(), userID, uuid.MustParse(req.VehicleID))
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context, req *FavoriteVehicleRequest) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	return h.favorites.RemoveFavorite(c.Request().Context(), userID, uuid.MustParse(req.VehicleID))
}
