// Package inventory loads vehicle exports from the CMS and mirrors them into
// the vehicles table.
//
// Export files are YAML; JSON exports parse too since YAML is a superset.
package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/validation"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// File is the top level of an export.
type File struct {
	Vehicles []Item `yaml:"vehicles" json:"vehicles" validate:"dive"`
}

// Item is one vehicle as the CMS exports it. Prices are in whole dollars.
type Item struct {
	Slug      string     `yaml:"slug" json:"slug" validate:"required,max=200"`
	Title     string     `yaml:"title" json:"title" validate:"required,max=200"`
	Year      int        `yaml:"year" json:"year" validate:"required,gte=1900"`
	Make      string     `yaml:"make" json:"make" validate:"required,max=50"`
	Model     string     `yaml:"model" json:"model" validate:"required,max=50"`
	Trim      string     `yaml:"trim" json:"trim" validate:"max=100"`
	Chassis   string     `yaml:"chassis" json:"chassis" validate:"max=20"`
	BodyStyle string     `yaml:"bodyStyle" json:"bodyStyle" validate:"max=50"`
	Price     *int64     `yaml:"price" json:"price" validate:"omitempty,gte=0"`
	Mileage   *int       `yaml:"mileage" json:"mileage" validate:"omitempty,gte=0"`
	Status    string     `yaml:"status" json:"status" validate:"omitempty,oneof=available pending sold"`
	ImageURL  string     `yaml:"imageUrl" json:"imageUrl" validate:"omitempty,url"`
	ListedAt  *time.Time `yaml:"listedAt" json:"listedAt"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Vehicle converts the item to the stored form.
func (i Item) Vehicle() model.Vehicle {
	v := model.Vehicle{
		Slug:      strings.ToLower(strings.TrimSpace(i.Slug)),
		Title:     strings.TrimSpace(i.Title),
		Year:      i.Year,
		Make:      strings.TrimSpace(i.Make),
		Model:     strings.TrimSpace(i.Model),
		Trim:      optional(i.Trim),
		Chassis:   optional(strings.ToUpper(i.Chassis)),
		BodyStyle: optional(strings.ToLower(i.BodyStyle)),
		Mileage:   i.Mileage,
		Status:    model.VehicleStatusAvailable,
		ImageURL:  optional(i.ImageURL),
	}
	if i.Status != "" {
		v.Status = model.VehicleStatus(i.Status)
	}
	if i.Price != nil {
		cents := *i.Price * 100
		v.PriceCents = &cents
	}
	if i.ListedAt != nil {
		v.ListedAt = i.ListedAt.UTC()
	}
	return v
}

// Parse decodes and validates an export. Duplicate slugs are rejected since
// the second row would silently overwrite the first.
func Parse(data []byte) ([]model.Vehicle, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("inventory: export is empty")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("inventory: decode export: %w", err)
	}
	if err := validation.Struct(f); err != nil {
		return nil, fmt.Errorf("inventory: invalid export: %w", err)
	}

	seen := make(map[string]int, len(f.Vehicles))
	vehicles := make([]model.Vehicle, 0, len(f.Vehicles))
	for idx, item := range f.Vehicles {
		v := item.Vehicle()
		if first, ok := seen[v.Slug]; ok {
			return nil, fmt.Errorf("inventory: slug %q appears at vehicles[%d] and vehicles[%d]", v.Slug, first, idx)
		}
		seen[v.Slug] = idx
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

// LoadFile reads and parses the export at path.
func LoadFile(path string) ([]model.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inventory: read %s: %w", path, err)
	}
	vehicles, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vehicles, nil
}

// Upserter stores one vehicle keyed by slug and reports whether it was new.
type Upserter interface {
	UpsertVehicle(ctx context.Context, v *model.Vehicle) (bool, error)
}

type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Import upserts every vehicle and stops at the first failure. Rows written
// before the failure stay written; rerunning the import is safe.
func Import(ctx context.Context, store Upserter, logger *zerolog.Logger, vehicles []model.Vehicle) (Result, error) {
	var res Result
	for i := range vehicles {
		created, err := store.UpsertVehicle(ctx, &vehicles[i])
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		logger.Debug().
			Str("slug", vehicles[i].Slug).
			Bool("created", created).
			Msg("vehicle imported")
	}

	logger.Info().
		Int("created", res.Created).
		Int("updated", res.Updated).
		Msg("inventory import finished")

	return res, nil
}
