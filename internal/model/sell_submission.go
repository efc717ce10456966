package model

import (
	"github.com/google/uuid"
)

type VehicleCondition string

const (
	VehicleConditionExcellent VehicleCondition = "excellent"
	VehicleConditionGood      VehicleCondition = "good"
	VehicleConditionFair      VehicleCondition = "fair"
	VehicleConditionPoor      VehicleCondition = "poor"
)

type SellSubmissionStatus string

const (
	SellSubmissionStatusNew       SellSubmissionStatus = "new"
	SellSubmissionStatusReviewing SellSubmissionStatus = "reviewing"
	SellSubmissionStatusOffered   SellSubmissionStatus = "offered"
	SellSubmissionStatusClosed    SellSubmissionStatus = "closed"
)

type SellSubmission struct {
	Base
	UserID           *uuid.UUID           `json:"userId" db:"user_id"`
	Name             string               `json:"name" db:"name"`
	Email            string               `json:"email" db:"email"`
	Phone            *string              `json:"phone" db:"phone"`
	Year             int                  `json:"year" db:"year"`
	Make             string               `json:"make" db:"make"`
	Model            string               `json:"model" db:"model"`
	Mileage          int                  `json:"mileage" db:"mileage"`
	VIN              *string              `json:"vin" db:"vin"`
	Condition        VehicleCondition     `json:"condition" db:"condition"`
	AskingPriceCents *int64               `json:"askingPriceCents" db:"asking_price_cents"`
	Description      *string              `json:"description" db:"description"`
	PhotoURLs        []string             `json:"photoUrls" db:"photo_urls"`
	Status           SellSubmissionStatus `json:"status" db:"status"`
}
