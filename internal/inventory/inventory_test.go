package inventory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/rs/zerolog"
)

const export = `
vehicles:
  - slug: E46-M3-Laguna-Seca
    title: 2003 BMW M3 Coupe
    year: 2003
    make: BMW
    model: M3
    chassis: e46
    bodyStyle: Coupe
    price: 38500
    mileage: 61000
    listedAt: 2026-09-01T12:00:00Z
  - slug: na-miata
    title: 1991 Mazda MX-5
    year: 1991
    make: Mazda
    model: MX-5
    status: sold
`

func TestParseYAML(t *testing.T) {
	vehicles, err := Parse([]byte(export))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("vehicles = %d", len(vehicles))
	}

	m3 := vehicles[0]
	if m3.Slug != "e46-m3-laguna-seca" {
		t.Fatalf("slug = %q", m3.Slug)
	}
	if m3.Chassis == nil || *m3.Chassis != "E46" || m3.BodyStyle == nil || *m3.BodyStyle != "coupe" {
		t.Fatalf("chassis/body not normalized: %+v", m3)
	}
	if m3.PriceCents == nil || *m3.PriceCents != 3_850_000 {
		t.Fatalf("price cents = %v", m3.PriceCents)
	}
	if m3.Status != model.VehicleStatusAvailable || m3.ListedAt.IsZero() {
		t.Fatalf("status/listed = %s %v", m3.Status, m3.ListedAt)
	}

	miata := vehicles[1]
	if miata.Status != model.VehicleStatusSold || miata.PriceCents != nil || miata.Trim != nil {
		t.Fatalf("miata = %+v", miata)
	}
}

func TestParseJSON(t *testing.T) {
	vehicles, err := Parse([]byte(`{"vehicles":[{"slug":"996-c4s","title":"2004 Porsche 911 Carrera 4S","year":2004,"make":"Porsche","model":"911","price":52000}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].Make != "Porsche" {
		t.Fatalf("vehicles = %+v", vehicles)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "  \n", "empty"},
		{"malformed", "vehicles: [", "decode"},
		{"missing make", "vehicles:\n  - slug: a\n    title: A\n    year: 2000\n    model: X\n", "invalid"},
		{"bad status", "vehicles:\n  - slug: a\n    title: A\n    year: 2000\n    make: M\n    model: X\n    status: scrapped\n", "invalid"},
		{"duplicate slug", "vehicles:\n  - {slug: a, title: A, year: 2000, make: M, model: X}\n  - {slug: A, title: B, year: 2001, make: M, model: Y}\n", "appears at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

type fakeStore struct {
	slugs map[string]bool
	fail  string
}

func (f *fakeStore) UpsertVehicle(_ context.Context, v *model.Vehicle) (bool, error) {
	if v.Slug == f.fail {
		return false, errors.New("constraint violated")
	}
	existed := f.slugs[v.Slug]
	f.slugs[v.Slug] = true
	v.ID = uuid.New()
	return !existed, nil
}

func TestImportCountsCreatedAndUpdated(t *testing.T) {
	vehicles, err := Parse([]byte(export))
	if err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{slugs: map[string]bool{"na-miata": true}}
	logger := zerolog.Nop()

	res, err := Import(context.Background(), store, &logger, vehicles)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Created != 1 || res.Updated != 1 {
		t.Fatalf("result = %+v", res)
	}
	if vehicles[0].ID == uuid.Nil {
		t.Fatal("ids should be filled in by the store")
	}
}

func TestImportStopsOnFailure(t *testing.T) {
	vehicles, _ := Parse([]byte(export))
	store := &fakeStore{slugs: map[string]bool{}, fail: "na-miata"}
	logger := zerolog.Nop()

	res, err := Import(context.Background(), store, &logger, vehicles)
	if err == nil {
		t.Fatal("expected the store error")
	}
	if res.Created != 1 {
		t.Fatalf("result = %+v", res)
	}
}
