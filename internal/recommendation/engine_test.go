package recommendation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
)

func strPtr(s string) *string { return &s }
func centsPtr(v int64) *int64 { return &v }

var listed = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func candidate(title, make, mdl, chassis, body string, year int, price int64, popularity int64, age time.Duration) model.Candidate {
	return model.Candidate{
		ID:         uuid.New(),
		Slug:       title,
		Title:      title,
		Year:       year,
		Make:       make,
		Model:      mdl,
		Chassis:    strPtr(chassis),
		BodyStyle:  strPtr(body),
		PriceCents: centsPtr(price),
		ListedAt:   listed.Add(-age),
		Popularity: popularity,
	}
}

func seedFrom(c model.Candidate, weight float64) Seed {
	return Seed{
		Make:       c.Make,
		Model:      c.Model,
		Chassis:    c.Chassis,
		BodyStyle:  c.BodyStyle,
		PriceCents: c.PriceCents,
		Year:       c.Year,
		Weight:     weight,
	}
}

func titles(items []model.Recommendation) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Vehicle.Title
	}
	return out
}

func TestRecommendAnonymousFallsBackToPopular(t *testing.T) {
	e := NewEngine(DefaultWeights())

	quiet := candidate("quiet", "BMW", "M3", "E46", "coupe", 2004, 3_500_000, 0, 0)
	busy := candidate("busy", "Porsche", "911", "996", "coupe", 2001, 4_000_000, 40, time.Hour)
	mid := candidate("mid", "BMW", "M5", "E39", "sedan", 2002, 2_500_000, 10, time.Hour)

	list := e.Recommend([]model.Candidate{quiet, busy, mid}, Input{Limit: 10})

	if list.Personalized {
		t.Fatal("anonymous recommendations must not be personalized")
	}
	got := titles(list.Items)
	want := []string{"busy", "mid", "quiet"}
	if len(got) != len(want) {
		t.Fatalf("items = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	for _, item := range list.Items {
		if len(item.Reasons) != 1 || item.Reasons[0] != ReasonPopular {
			t.Fatalf("%s reasons = %v", item.Vehicle.Title, item.Reasons)
		}
	}
}

func TestRecommendScoresOverlap(t *testing.T) {
	e := NewEngine(DefaultWeights())

	favorite := candidate("fav e46 m3", "BMW", "M3", "E46", "coupe", 2003, 3_000_000, 5, 0)
	sameChassis := candidate("e46 330ci", "BMW", "330Ci", "E46", "coupe", 2004, 1_500_000, 0, 0)
	sameModel := candidate("e92 m3", "BMW", "M3", "E92", "coupe", 2011, 4_500_000, 0, 0)
	sameMake := candidate("e39 m5", "BMW", "M5", "E39", "sedan", 2002, 2_900_000, 0, 0)
	unrelated := candidate("miata", "Mazda", "MX-5", "NA", "roadster", 1992, 900_000, 50, 0)

	list := e.Recommend(
		[]model.Candidate{favorite, sameChassis, sameModel, sameMake, unrelated},
		Input{
			Seeds:   []Seed{seedFrom(favorite, FavoriteWeight)},
			Exclude: map[uuid.UUID]struct{}{favorite.ID: {}},
			Limit:   3,
		},
	)

	if !list.Personalized {
		t.Fatal("expected personalized results")
	}
	got := titles(list.Items)
	want := []string{"e46 330ci", "e92 m3", "e39 m5"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	first := list.Items[0]
	if first.Reasons[0] != ReasonChassis {
		t.Fatalf("top reason = %q, want chassis", first.Reasons[0])
	}
	for _, item := range list.Items {
		if len(item.Reasons) == 0 {
			t.Fatalf("%s has no reasons", item.Vehicle.Title)
		}
		if item.Vehicle.ID == favorite.ID {
			t.Fatal("favorited vehicle recommended back")
		}
	}
}

func TestRecommendFillsWithPopular(t *testing.T) {
	e := NewEngine(DefaultWeights())

	viewed := candidate("viewed", "Audi", "RS4", "B7", "sedan", 2007, 3_000_000, 0, 0)
	match := candidate("match", "Audi", "S4", "B7", "sedan", 2007, 2_000_000, 0, 0)
	popular := candidate("popular", "Honda", "S2000", "AP2", "roadster", 2008, 3_200_000, 100, 0)
	lessPopular := candidate("less popular", "Toyota", "Supra", "A80", "coupe", 1997, 9_000_000, 20, 0)

	list := e.Recommend(
		[]model.Candidate{viewed, match, popular, lessPopular},
		Input{
			Seeds:   []Seed{seedFrom(viewed, ViewWeight)},
			Exclude: map[uuid.UUID]struct{}{viewed.ID: {}},
			Limit:   3,
		},
	)

	got := titles(list.Items)
	want := []string{"match", "popular", "less popular"}
	if len(got) != 3 {
		t.Fatalf("items = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if !list.Personalized {
		t.Fatal("at least one personalized item should mark the list personalized")
	}
}

func TestRecommendPriceAndYearBands(t *testing.T) {
	e := NewEngine(DefaultWeights())

	seed := Seed{Make: "Lotus", Model: "Elise", PriceCents: centsPtr(5_000_000), Year: 2005, Weight: 1}

	inBand := candidate("in band", "Ford", "Focus RS", "", "", 2006, 5_500_000, 0, 0)
	outOfBand := candidate("out of band", "Ford", "GT", "", "", 2020, 50_000_000, 0, 0)

	list := e.Recommend([]model.Candidate{inBand, outOfBand}, Input{Seeds: []Seed{seed}, Limit: 1})

	if len(list.Items) != 1 || list.Items[0].Vehicle.Title != "in band" {
		t.Fatalf("items = %v", titles(list.Items))
	}
	reasons := list.Items[0].Reasons
	if len(reasons) != 2 || reasons[0] != ReasonPrice || reasons[1] != ReasonYear {
		t.Fatalf("reasons = %v", reasons)
	}
	if list.Items[0].Score != 2.5 {
		t.Fatalf("score = %v, want 2.5", list.Items[0].Score)
	}
}

func TestRecommendTieBreaksOnListingThenID(t *testing.T) {
	e := NewEngine(DefaultWeights())

	older := candidate("older", "BMW", "Z3", "E36", "roadster", 1999, 0, 0, 48*time.Hour)
	newer := candidate("newer", "BMW", "Z3", "E36", "roadster", 1999, 0, 0, time.Hour)

	list := e.Recommend([]model.Candidate{older, newer}, Input{
		Seeds: []Seed{{Make: "BMW", Model: "Z3", Weight: 1}},
	})

	if got := titles(list.Items); got[0] != "newer" {
		t.Fatalf("order = %v", got)
	}
}

func TestLimitClamping(t *testing.T) {
	if clampLimit(0) != DefaultLimit {
		t.Fatal("zero limit should use the default")
	}
	if clampLimit(1000) != MaxLimit {
		t.Fatal("large limits should be capped")
	}
	if clampLimit(5) != 5 {
		t.Fatal("valid limits pass through")
	}
}

func TestSeedsWithoutWeightAreIgnored(t *testing.T) {
	e := NewEngine(DefaultWeights())
	c := candidate("only", "BMW", "M3", "E46", "coupe", 2004, 3_000_000, 1, 0)

	list := e.Recommend([]model.Candidate{c}, Input{Seeds: []Seed{{Make: "BMW", Model: "M3", Weight: 0}}})
	if list.Personalized {
		t.Fatal("zero-weight seeds should not build a profile")
	}
}
