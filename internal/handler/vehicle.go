package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/middleware"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
	"github.com/magnetco/enthusiastauto-sub003/internal/validation"
)

type VehicleHandler struct {
	Handler
	vehicles        *service.VehicleService
	recommendations *service.RecommendationService
}

func NewVehicleHandler(s *server.Server, vehicles *service.VehicleService, recommendations *service.RecommendationService) *VehicleHandler {
	return &VehicleHandler{
		Handler:         NewHandler(s),
		vehicles:        vehicles,
		recommendations: recommendations,
	}
}

type RecordViewRequest struct {
	VehicleID string `param:"vehicleId" validate:"required,uuid"`
}

func (r *RecordViewRequest) Validate() error {
	return validation.Struct(r)
}

type RecommendationsRequest struct {
	Limit int `query:"limit" validate:"gte=0"`
}

func (r *RecommendationsRequest) Validate() error {
	return validation.Struct(r)
}

func (h *VehicleHandler) RecordView(c echo.Context, req *RecordViewRequest) error {
	return h.vehicles.RecordView(c.Request().Context(), uuid.MustParse(req.VehicleID), middleware.OptionalUserUUID(c))
}

// GetRecommendations personalizes for signed-in callers and falls back to
// popular inventory for everyone else.
func (h *VehicleHandler) GetRecommendations(c echo.Context, req *RecommendationsRequest) (*model.RecommendationList, error) {
	return h.recommendations.Recommend(c.Request().Context(), middleware.OptionalUserUUID(c), req.Limit)
}
