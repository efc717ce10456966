package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/middleware"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
	"github.com/magnetco/enthusiastauto-sub003/internal/validation"
)

const dateLayout = "2006-01-02"

type FormsHandler struct {
	Handler
	serviceRequests *service.ServiceRequestService
	sellSubmissions *service.SellSubmissionService
}

func NewFormsHandler(s *server.Server, serviceRequests *service.ServiceRequestService, sellSubmissions *service.SellSubmissionService) *FormsHandler {
	return &FormsHandler{
		Handler:         NewHandler(s),
		serviceRequests: serviceRequests,
		sellSubmissions: sellSubmissions,
	}
}

// maxModelYear accepts next year's models, which dealers list early.
func maxModelYear(now time.Time) int {
	return now.Year() + 1
}

type CreateServiceRequestRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Email         string  `json:"email" validate:"required,email,max=254"`
	Phone         *string `json:"phone" validate:"omitempty,max=32"`
	VehicleYear   int     `json:"vehicleYear" validate:"required,gte=1900"`
	VehicleMake   string  `json:"vehicleMake" validate:"required,max=50"`
	VehicleModel  string  `json:"vehicleModel" validate:"required,max=50"`
	VIN           *string `json:"vin" validate:"omitempty,vin"`
	ServiceType   string  `json:"serviceType" validate:"required,oneof=maintenance repair inspection performance detailing other"`
	Description   string  `json:"description" validate:"required,min=10,max=2000"`
	PreferredDate *string `json:"preferredDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateServiceRequestRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	now := time.Now().UTC()

	var custom validation.CustomValidationErrors
	if r.VehicleYear > maxModelYear(now) {
		custom = append(custom, validation.CustomValidationError{Field: "vehicleYear", Message: "must not be in the future"})
	}
	if date := r.preferredDate(); date != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(today) {
			custom = append(custom, validation.CustomValidationError{Field: "preferredDate", Message: "must not be in the past"})
		}
	}
	if len(custom) > 0 {
		return custom
	}
	return nil
}

func (r *CreateServiceRequestRequest) preferredDate() *time.Time {
	if r.PreferredDate == nil || strings.TrimSpace(*r.PreferredDate) == "" {
		return nil
	}
	date, err := time.Parse(dateLayout, *r.PreferredDate)
	if err != nil {
		return nil
	}
	return &date
}

type CreateSellSubmissionRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email,max=254"`
	Phone       *string  `json:"phone" validate:"omitempty,max=32"`
	Year        int      `json:"year" validate:"required,gte=1900"`
	Make        string   `json:"make" validate:"required,max=50"`
	Model       string   `json:"model" validate:"required,max=50"`
	Mileage     int      `json:"mileage" validate:"gte=0,lte=2000000"`
	VIN         *string  `json:"vin" validate:"omitempty,vin"`
	Condition   string   `json:"condition" validate:"required,oneof=excellent good fair poor"`
	AskingPrice *int64   `json:"askingPrice" validate:"omitempty,gte=0,lte=100000000"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	PhotoURLs   []string `json:"photoUrls" validate:"omitempty,max=20,dive,required,url,max=2048"`
}

func (r *CreateSellSubmissionRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if r.Year > maxModelYear(time.Now()) {
		return validation.CustomValidationErrors{{Field: "year", Message: "must not be in the future"}}
	}
	return nil
}

func (h *FormsHandler) CreateServiceRequest(c echo.Context, req *CreateServiceRequestRequest) (*model.ServiceRequest, error) {
	return h.serviceRequests.CreateServiceRequest(c.Request().Context(), service.CreateServiceRequestInput{
		UserID:        middleware.OptionalUserUUID(c),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		VehicleYear:   req.VehicleYear,
		VehicleMake:   req.VehicleMake,
		VehicleModel:  req.VehicleModel,
		VIN:           req.VIN,
		ServiceType:   model.ServiceType(req.ServiceType),
		Description:   req.Description,
		PreferredDate: req.preferredDate(),
	})
}

func (h *FormsHandler) ListServiceRequests(c echo.Context, _ *EmptyRequest) ([]model.ServiceRequest, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	return h.serviceRequests.ListServiceRequests(c.Request().Context(), userID)
}

func (h *FormsHandler) CreateSellSubmission(c echo.Context, req *CreateSellSubmissionRequest) (*model.SellSubmission, error) {
	var askingCents *int64
	if req.AskingPrice != nil {
		cents := *req.AskingPrice * 100
		askingCents = &cents
	}

	return h.sellSubmissions.CreateSellSubmission(c.Request().Context(), service.CreateSellSubmissionInput{
		UserID:           middleware.OptionalUserUUID(c),
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Year:             req.Year,
		Make:             req.Make,
		Model:            req.Model,
		Mileage:          req.Mileage,
		VIN:              req.VIN,
		Condition:        model.VehicleCondition(req.Condition),
		AskingPriceCents: askingCents,
		Description:      req.Description,
		PhotoURLs:        req.PhotoURLs,
	})
}

func (h *FormsHandler) ListSellSubmissions(c echo.Context, _ *EmptyRequest) ([]model.SellSubmission, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	return h.sellSubmissions.ListSellSubmissions(c.Request().Context(), userID)
}
