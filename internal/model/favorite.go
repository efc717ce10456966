package model

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	VehicleID uuid.UUID `json:"vehicleId" db:"vehicle_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type FavoriteWithVehicle struct {
	Favorite
	Vehicle VehicleSummary `json:"vehicle"`
}
