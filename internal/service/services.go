package service

import (
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/job"
	"github.com/magnetco/enthusiastauto-sub003/internal/repository"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

type Services struct {
	Auth            *AuthService
	Users           *UserService
	Favorites       *FavoriteService
	Vehicles        *VehicleService
	Recommendations *RecommendationService
	ServiceRequests *ServiceRequestService
	SellSubmissions *SellSubmissionService
	Job             *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	jobs := s.Job.Client

	return &Services{
		Auth: NewAuthService(
			repos.Users,
			repos.Sessions,
			repos.VerificationTokens,
			jobs,
			s.Cache,
			s.Config.Auth,
			s.Logger,
		),
		Users:           NewUserService(repos.Users),
		Favorites:       NewFavoriteService(repos.Favorites, repos.Vehicles),
		Vehicles:        NewVehicleService(repos.Vehicles),
		Recommendations: NewRecommendationService(repos.Vehicles, s.Cache, *s.Config.Recommendation),
		ServiceRequests: NewServiceRequestService(repos.ServiceRequests, jobs, s.Logger),
		SellSubmissions: NewSellSubmissionService(repos.SellSubmissions, jobs, s.Logger),
		Job:             s.Job,
	}, nil
}
