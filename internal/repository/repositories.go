package repository

import (
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type Repositories struct {
	Users              *UserRepository
	Sessions           *SessionRepository
	VerificationTokens *VerificationTokenRepository
	Vehicles           *VehicleRepository
	Favorites          *FavoriteRepository
	ServiceRequests    *ServiceRequestRepository
	SellSubmissions    *SellSubmissionRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:              NewUserRepository(s),
		Sessions:           NewSessionRepository(s),
		VerificationTokens: NewVerificationTokenRepository(s),
		Vehicles:           NewVehicleRepository(s),
		Favorites:          NewFavoriteRepository(s),
		ServiceRequests:    NewServiceRequestRepository(s),
		SellSubmissions:    NewSellSubmissionRepository(s),
	}
}
