// Package service holds the business logic between handlers and
// repositories. Each service depends on the narrow store interfaces below so
// it can be exercised without a database.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/repository"
)

type UserStore interface {
	CreateUser(ctx context.Context, name *string, email, passwordHash string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, image *string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type SessionStore interface {
	CreateSession(ctx context.Context, userID uuid.UUID, expiresAt time.Time, userAgent, ip *string) (*model.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*model.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type TokenStore interface {
	ReplaceToken(ctx context.Context, token model.VerificationToken) error
	ConsumeToken(ctx context.Context, identifier, tokenHash, purpose string) (*model.VerificationToken, error)
}

type VehicleStore interface {
	VehicleExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListCandidates(ctx context.Context) ([]model.Candidate, error)
	ListUserHistory(ctx context.Context, userID uuid.UUID, limit int) ([]repository.HistoryVehicle, error)
	RecordView(ctx context.Context, vehicleID uuid.UUID, userID *uuid.UUID) error
}

type FavoriteStore interface {
	CreateFavorite(ctx context.Context, userID, vehicleID uuid.UUID) (*model.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, vehicleID uuid.UUID) (bool, error)
	IsFavorite(ctx context.Context, userID, vehicleID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithVehicle, error)
}

type ServiceRequestStore interface {
	CreateServiceRequest(ctx context.Context, req *model.ServiceRequest) (*model.ServiceRequest, error)
	ListServiceRequests(ctx context.Context, userID uuid.UUID) ([]model.ServiceRequest, error)
}

type SellSubmissionStore interface {
	CreateSellSubmission(ctx context.Context, sub *model.SellSubmission) (*model.SellSubmission, error)
	ListSellSubmissions(ctx context.Context, userID uuid.UUID) ([]model.SellSubmission, error)
}
