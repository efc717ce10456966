package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceTypeMaintenance ServiceType = "maintenance"
	ServiceTypeRepair      ServiceType = "repair"
	ServiceTypeInspection  ServiceType = "inspection"
	ServiceTypePerformance ServiceType = "performance"
	ServiceTypeDetailing   ServiceType = "detailing"
	ServiceTypeOther       ServiceType = "other"
)

type ServiceRequestStatus string

const (
	ServiceRequestStatusPending   ServiceRequestStatus = "pending"
	ServiceRequestStatusScheduled ServiceRequestStatus = "scheduled"
	ServiceRequestStatusCompleted ServiceRequestStatus = "completed"
	ServiceRequestStatusCancelled ServiceRequestStatus = "cancelled"
)

type ServiceRequest struct {
	Base
	UserID        *uuid.UUID           `json:"userId" db:"user_id"`
	Name          string               `json:"name" db:"name"`
	Email         string               `json:"email" db:"email"`
	Phone         *string              `json:"phone" db:"phone"`
	VehicleYear   int                  `json:"vehicleYear" db:"vehicle_year"`
	VehicleMake   string               `json:"vehicleMake" db:"vehicle_make"`
	VehicleModel  string               `json:"vehicleModel" db:"vehicle_model"`
	VIN           *string              `json:"vin" db:"vin"`
	ServiceType   ServiceType          `json:"serviceType" db:"service_type"`
	Description   string               `json:"description" db:"description"`
	PreferredDate *time.Time           `json:"preferredDate" db:"preferred_date"`
	Status        ServiceRequestStatus `json:"status" db:"status"`
}
