package service

import (
	"context"

	"github.com/google/uuid"
)

type VehicleService struct {
	vehicles VehicleStore
}

func NewVehicleService(vehicles VehicleStore) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// RecordView counts a detail-page view toward popularity and, for signed-in
// users, their browsing history.
func (s *VehicleService) RecordView(ctx context.Context, vehicleID uuid.UUID, userID *uuid.UUID) error {
	exists, err := s.vehicles.VehicleExists(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !exists {
		return errVehicleNotFound
	}
	return s.vehicles.RecordView(ctx, vehicleID, userID)
}
