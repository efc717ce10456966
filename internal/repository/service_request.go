package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type ServiceRequestRepository struct {
	server *server.Server
}

func NewServiceRequestRepository(s *server.Server) *ServiceRequestRepository {
	return &ServiceRequestRepository{server: s}
}

const serviceRequestColumns = `id, user_id, name, email, phone, vehicle_year, vehicle_make, vehicle_model,
	vin, service_type, description, preferred_date, status, created_at, updated_at`

func (r *ServiceRequestRepository) CreateServiceRequest(ctx context.Context, req *model.ServiceRequest) (*model.ServiceRequest, error) {
	stmt := `
		INSERT INTO service_requests (user_id, name, email, phone, vehicle_year, vehicle_make,
			vehicle_model, vin, service_type, description, preferred_date)
		VALUES (@user_id, @name, @email, @phone, @vehicle_year, @vehicle_make,
			@vehicle_model, @vin, @service_type, @description, @preferred_date)
		RETURNING ` + serviceRequestColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":        req.UserID,
		"name":           req.Name,
		"email":          req.Email,
		"phone":          req.Phone,
		"vehicle_year":   req.VehicleYear,
		"vehicle_make":   req.VehicleMake,
		"vehicle_model":  req.VehicleModel,
		"vin":            req.VIN,
		"service_type":   req.ServiceType,
		"description":    req.Description,
		"preferred_date": req.PreferredDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create service request query for email=%s: %w", req.Email, err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ServiceRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:service_requests for email=%s: %w", req.Email, err)
	}

	return &created, nil
}

func (r *ServiceRequestRepository) ListServiceRequests(ctx context.Context, userID uuid.UUID) ([]model.ServiceRequest, error) {
	stmt := `SELECT ` + serviceRequestColumns + `
		FROM service_requests
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute list service requests query for user_id=%s: %w", userID, err)
	}

	requests, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ServiceRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:service_requests for user_id=%s: %w", userID, err)
	}

	return requests, nil
}
