package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/middleware"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
	Auth      *AuthHandler
	Users     *UserHandler
	Favorites *FavoriteHandler
	Vehicles  *VehicleHandler
	Forms     *FormsHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Auth:      NewAuthHandler(s, services.Auth),
		Users:     NewUserHandler(s, services.Users, services.Auth),
		Favorites: NewFavoriteHandler(s, services.Favorites),
		Vehicles:  NewVehicleHandler(s, services.Vehicles, services.Recommendations),
		Forms:     NewFormsHandler(s, services.ServiceRequests, services.SellSubmissions),
	}
}

// requireUser returns the caller's id on routes behind RequireAuth.
func requireUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserUUID(c)
	if !ok {
		return uuid.Nil, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return userID, nil
}
