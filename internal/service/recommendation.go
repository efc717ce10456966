package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/magnetco/enthusiastauto-sub003/internal/cache"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/recommendation"
)

// CandidatesCacheKey holds the available inventory with popularity counts.
const CandidatesCacheKey = "recommendations:candidates"

type RecommendationService struct {
	vehicles VehicleStore
	cache    cache.Store
	engine   *recommendation.Engine
	cfg      config.RecommendationConfig
}

func NewRecommendationService(vehicles VehicleStore, store cache.Store, cfg config.RecommendationConfig) *RecommendationService {
	return &RecommendationService{
		vehicles: vehicles,
		cache:    store,
		engine:   recommendation.NewEngine(recommendation.DefaultWeights()),
		cfg:      cfg,
	}
}

func (s *RecommendationService) limit(requested int) int {
	if requested <= 0 {
		return s.cfg.DefaultLimit
	}
	if requested > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return requested
}

// Recommend ranks inventory for userID, or returns popular vehicles when the
// caller is anonymous.
func (s *RecommendationService) Recommend(ctx context.Context, userID *uuid.UUID, limit int) (*model.RecommendationList, error) {
	candidates, err := cache.Remember(ctx, s.cache, CandidatesCacheKey, s.cfg.CandidateTTL, s.vehicles.ListCandidates)
	if err != nil {
		return nil, err
	}

	in := recommendation.Input{Limit: s.limit(limit)}

	if userID != nil {
		history, err := s.vehicles.ListUserHistory(ctx, *userID, s.cfg.HistorySize)
		if err != nil {
			return nil, err
		}

		in.Exclude = make(map[uuid.UUID]struct{}, len(history))
		in.Seeds = make([]recommendation.Seed, 0, len(history))
		for _, h := range history {
			weight := recommendation.ViewWeight
			if h.Favorited {
				weight = recommendation.FavoriteWeight
			}
			in.Seeds = append(in.Seeds, recommendation.Seed{
				Make:       h.Make,
				Model:      h.Model,
				Chassis:    h.Chassis,
				BodyStyle:  h.BodyStyle,
				PriceCents: h.PriceCents,
				Year:       h.Year,
				Weight:     weight,
			})
			in.Exclude[h.ID] = struct{}{}
		}
	}

	list := s.engine.Recommend(candidates, in)
	if list.Items == nil {
		list.Items = []model.Recommendation{}
	}
	return &list, nil
}
