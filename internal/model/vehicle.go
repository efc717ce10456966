package model

import (
	"time"

	"github.com/google/uuid"
)

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusPending   VehicleStatus = "pending"
	VehicleStatusSold      VehicleStatus = "sold"
)

// Vehicle is the inventory row mirrored from the CMS.
type Vehicle struct {
	Base
	Slug       string        `json:"slug" db:"slug"`
	Title      string        `json:"title" db:"title"`
	Year       int           `json:"year" db:"year"`
	Make       string        `json:"make" db:"make"`
	Model      string        `json:"model" db:"model"`
	Trim       *string       `json:"trim" db:"trim"`
	Chassis    *string       `json:"chassis" db:"chassis"`
	BodyStyle  *string       `json:"bodyStyle" db:"body_style"`
	PriceCents *int64        `json:"priceCents" db:"price_cents"`
	Mileage    *int          `json:"mileage" db:"mileage"`
	Status     VehicleStatus `json:"status" db:"status"`
	ImageURL   *string       `json:"imageUrl" db:"image_url"`
	ListedAt   time.Time     `json:"listedAt" db:"listed_at"`
}

// VehicleSummary is the compact form embedded in favorites and
// recommendations.
type VehicleSummary struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	Slug       string        `json:"slug" db:"slug"`
	Title      string        `json:"title" db:"title"`
	Year       int           `json:"year" db:"year"`
	Make       string        `json:"make" db:"make"`
	Model      string        `json:"model" db:"model"`
	PriceCents *int64        `json:"priceCents" db:"price_cents"`
	Mileage    *int          `json:"mileage" db:"mileage"`
	Status     VehicleStatus `json:"status" db:"status"`
	ImageURL   *string       `json:"imageUrl" db:"image_url"`
}

// Candidate is a vehicle considered for recommendations along with its
// popularity (views plus favorites).
type Candidate struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Slug       string    `json:"slug" db:"slug"`
	Title      string    `json:"title" db:"title"`
	Year       int       `json:"year" db:"year"`
	Make       string    `json:"make" db:"make"`
	Model      string    `json:"model" db:"model"`
	Chassis    *string   `json:"chassis" db:"chassis"`
	BodyStyle  *string   `json:"bodyStyle" db:"body_style"`
	PriceCents *int64    `json:"priceCents" db:"price_cents"`
	Mileage    *int      `json:"mileage" db:"mileage"`
	ImageURL   *string   `json:"imageUrl" db:"image_url"`
	ListedAt   time.Time `json:"listedAt" db:"listed_at"`
	Popularity int64     `json:"popularity" db:"popularity"`
}

func (c Candidate) Summary() VehicleSummary {
	return VehicleSummary{
		ID:         c.ID,
		Slug:       c.Slug,
		Title:      c.Title,
		Year:       c.Year,
		Make:       c.Make,
		Model:      c.Model,
		PriceCents: c.PriceCents,
		Mileage:    c.Mileage,
		Status:     VehicleStatusAvailable,
		ImageURL:   c.ImageURL,
	}
}
