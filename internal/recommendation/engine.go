// Package recommendation ranks inventory for a shopper.
//
// A profile is built from the vehicles the shopper favorited or viewed, and
// each available vehicle is scored by how much it overlaps that profile
// (chassis, model, marque, body style, price band, model year). Shoppers
// without history get the most popular vehicles instead.
package recommendation

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
)

const (
	DefaultLimit = 8
	MaxLimit     = 24

	FavoriteWeight = 2.0
	ViewWeight     = 1.0
)

// Weights are the points each kind of overlap is worth.
type Weights struct {
	Chassis    float64
	Model      float64
	Make       float64
	BodyStyle  float64
	PriceBand  float64
	YearBand   float64
	Popularity float64

	// PriceTolerance is the fraction around the profile's mean price that
	// still counts as the same band.
	PriceTolerance float64
	// YearTolerance is the number of model years either side of the mean.
	YearTolerance float64
}

func DefaultWeights() Weights {
	return Weights{
		Chassis:        3.0,
		Model:          2.0,
		Make:           1.0,
		BodyStyle:      1.0,
		PriceBand:      1.5,
		YearBand:       1.0,
		Popularity:     0.5,
		PriceTolerance: 0.2,
		YearTolerance:  3,
	}
}

const (
	ReasonChassis   = "Same chassis as vehicles you've looked at"
	ReasonModel     = "Matches models you've favorited or viewed"
	ReasonMake      = "From a marque you follow"
	ReasonBodyStyle = "Similar body style"
	ReasonPrice     = "In your price range"
	ReasonYear      = "Similar model year"
	ReasonPopular   = "Popular with enthusiasts"
)

// Seed is a vehicle the shopper interacted with.
type Seed struct {
	Make       string
	Model      string
	Chassis    *string
	BodyStyle  *string
	PriceCents *int64
	Year       int
	Weight     float64
}

// Input is everything the engine needs about one shopper.
type Input struct {
	Seeds []Seed
	// Exclude holds vehicles the shopper already favorited or viewed.
	Exclude map[uuid.UUID]struct{}
	Limit   int
}

type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

type profile struct {
	total       float64
	chassis     map[string]float64
	models      map[string]float64
	makes       map[string]float64
	bodies      map[string]float64
	priceSum    float64
	priceWeight float64
	yearSum     float64
	yearWeight  float64
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return normalize(*s)
}

func modelKey(marque, model string) string {
	return normalize(marque) + "|" + normalize(model)
}

func buildProfile(seeds []Seed) profile {
	p := profile{
		chassis: make(map[string]float64),
		models:  make(map[string]float64),
		makes:   make(map[string]float64),
		bodies:  make(map[string]float64),
	}

	for _, s := range seeds {
		if s.Weight <= 0 {
			continue
		}
		p.total += s.Weight

		if c := deref(s.Chassis); c != "" {
			p.chassis[c] += s.Weight
		}
		if s.Make != "" {
			p.makes[normalize(s.Make)] += s.Weight
			if s.Model != "" {
				p.models[modelKey(s.Make, s.Model)] += s.Weight
			}
		}
		if b := deref(s.BodyStyle); b != "" {
			p.bodies[b] += s.Weight
		}
		if s.PriceCents != nil && *s.PriceCents > 0 {
			p.priceSum += float64(*s.PriceCents) * s.Weight
			p.priceWeight += s.Weight
		}
		if s.Year > 0 {
			p.yearSum += float64(s.Year) * s.Weight
			p.yearWeight += s.Weight
		}
	}

	return p
}

type contribution struct {
	points float64
	reason string
}

type scored struct {
	candidate model.Candidate
	score     float64
	reasons   []string
}

// score returns the personal score for c and the reasons behind it, ordered
// by contribution.
func (e *Engine) score(p profile, c model.Candidate) (float64, []string) {
	if p.total == 0 {
		return 0, nil
	}

	var parts []contribution
	add := func(points float64, reason string) {
		if points > 0 {
			parts = append(parts, contribution{points: points, reason: reason})
		}
	}

	if ch := deref(c.Chassis); ch != "" {
		add(e.weights.Chassis*p.chassis[ch]/p.total, ReasonChassis)
	}
	add(e.weights.Model*p.models[modelKey(c.Make, c.Model)]/p.total, ReasonModel)
	add(e.weights.Make*p.makes[normalize(c.Make)]/p.total, ReasonMake)
	if b := deref(c.BodyStyle); b != "" {
		add(e.weights.BodyStyle*p.bodies[b]/p.total, ReasonBodyStyle)
	}
	if p.priceWeight > 0 && c.PriceCents != nil && *c.PriceCents > 0 {
		mean := p.priceSum / p.priceWeight
		if math.Abs(float64(*c.PriceCents)-mean) <= mean*e.weights.PriceTolerance {
			add(e.weights.PriceBand, ReasonPrice)
		}
	}
	if p.yearWeight > 0 && c.Year > 0 {
		mean := p.yearSum / p.yearWeight
		if math.Abs(float64(c.Year)-mean) <= e.weights.YearTolerance {
			add(e.weights.YearBand, ReasonYear)
		}
	}

	sort.SliceStable(parts, func(i, j int) bool { return parts[i].points > parts[j].points })

	total := 0.0
	reasons := make([]string, 0, len(parts))
	for _, part := range parts {
		total += part.points
		reasons = append(reasons, part.reason)
	}

	return total, reasons
}

func maxPopularity(candidates []model.Candidate) int64 {
	var top int64
	for _, c := range candidates {
		if c.Popularity > top {
			top = c.Popularity
		}
	}
	return top
}

func (e *Engine) popularityBonus(c model.Candidate, top int64) float64 {
	if top <= 0 || c.Popularity <= 0 {
		return 0
	}
	return e.weights.Popularity * float64(c.Popularity) / float64(top)
}

// less orders by score, then newer listing, then id for determinism.
func less(a, b scored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if !a.candidate.ListedAt.Equal(b.candidate.ListedAt) {
		return a.candidate.ListedAt.After(b.candidate.ListedAt)
	}
	return a.candidate.ID.String() < b.candidate.ID.String()
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Popular ranks candidates by popularity alone. Every item carries
// ReasonPopular, including ones nobody has favorited yet.
func (e *Engine) Popular(candidates []model.Candidate, exclude map[uuid.UUID]struct{}, limit int) []model.Recommendation {
	limit = clampLimit(limit)
	top := maxPopularity(candidates)

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if _, skip := exclude[c.ID]; skip {
			continue
		}
		ranked = append(ranked, scored{
			candidate: c,
			score:     e.popularityBonus(c, top),
			reasons:   []string{ReasonPopular},
		})
	}

	sort.Slice(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	return toRecommendations(ranked, limit)
}

// Recommend returns up to in.Limit recommendations. Personalized is true
// when at least one item was scored against the shopper's history; popular
// vehicles fill any remaining slots.
func (e *Engine) Recommend(candidates []model.Candidate, in Input) model.RecommendationList {
	limit := clampLimit(in.Limit)

	p := buildProfile(in.Seeds)
	if p.total == 0 {
		return model.RecommendationList{
			Personalized: false,
			Items:        e.Popular(candidates, in.Exclude, limit),
		}
	}

	top := maxPopularity(candidates)

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if _, skip := in.Exclude[c.ID]; skip {
			continue
		}
		personal, reasons := e.score(p, c)
		if personal <= 0 {
			continue
		}
		ranked = append(ranked, scored{
			candidate: c,
			score:     personal + e.popularityBonus(c, top),
			reasons:   reasons,
		})
	}

	sort.Slice(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	items := toRecommendations(ranked, limit)
	personalized := len(items) > 0

	if len(items) < limit {
		taken := make(map[uuid.UUID]struct{}, len(in.Exclude)+len(items))
		for id := range in.Exclude {
			taken[id] = struct{}{}
		}
		for _, item := range items {
			taken[item.Vehicle.ID] = struct{}{}
		}
		items = append(items, e.Popular(candidates, taken, limit-len(items))...)
	}

	return model.RecommendationList{Personalized: personalized, Items: items}
}

func toRecommendations(ranked []scored, limit int) []model.Recommendation {
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]model.Recommendation, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, model.Recommendation{
			Vehicle: s.candidate.Summary(),
			Score:   math.Round(s.score*100) / 100,
			Reasons: s.reasons,
		})
	}
	return out
}
