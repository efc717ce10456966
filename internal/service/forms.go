package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/email"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/job"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/utils"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/rs/zerolog"
)

func reference(prefix string, id uuid.UUID) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func vehicleLabel(year int, marque, mdl string) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s %s", year, marque, mdl))
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

type ServiceRequestService struct {
	requests ServiceRequestStore
	jobs     job.Enqueuer
	logger   *zerolog.Logger
}

func NewServiceRequestService(requests ServiceRequestStore, jobs job.Enqueuer, logger *zerolog.Logger) *ServiceRequestService {
	return &ServiceRequestService{requests: requests, jobs: jobs, logger: logger}
}

type CreateServiceRequestInput struct {
	UserID        *uuid.UUID
	Name          string
	Email         string
	Phone         *string
	VehicleYear   int
	VehicleMake   string
	VehicleModel  string
	VIN           *string
	ServiceType   model.ServiceType
	Description   string
	PreferredDate *time.Time
}

// CreateServiceRequest stores the request, then emails the customer and the
// service desk.
func (s *ServiceRequestService) CreateServiceRequest(ctx context.Context, in CreateServiceRequestInput) (*model.ServiceRequest, error) {
	var vin *string
	if v := utils.NilIfEmpty(in.VIN); v != nil {
		upper := strings.ToUpper(*v)
		vin = &upper
	}

	created, err := s.requests.CreateServiceRequest(ctx, &model.ServiceRequest{
		UserID:        in.UserID,
		Name:          strings.TrimSpace(in.Name),
		Email:         utils.NormalizeEmail(in.Email),
		Phone:         utils.NilIfEmpty(in.Phone),
		VehicleYear:   in.VehicleYear,
		VehicleMake:   strings.TrimSpace(in.VehicleMake),
		VehicleModel:  strings.TrimSpace(in.VehicleModel),
		VIN:           vin,
		ServiceType:   in.ServiceType,
		Description:   strings.TrimSpace(in.Description),
		PreferredDate: in.PreferredDate,
	})
	if err != nil {
		return nil, err
	}

	ref := reference("SR", created.ID)
	vehicle := vehicleLabel(created.VehicleYear, created.VehicleMake, created.VehicleModel)

	preferred := ""
	if created.PreferredDate != nil {
		preferred = created.PreferredDate.Format("Jan 2, 2006")
	}

	job.Dispatch(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewServiceRequestEmailTask(job.ServiceRequestEmailPayload{
			To:            created.Email,
			Name:          created.Name,
			ServiceType:   string(created.ServiceType),
			Vehicle:       vehicle,
			PreferredDate: preferred,
			Reference:     ref,
		})
	})

	job.Dispatch(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewStaffNotificationTask("New service request "+ref, []email.Field{
			{Label: "Name", Value: created.Name},
			{Label: "Email", Value: created.Email},
			{Label: "Phone", Value: optional(created.Phone)},
			{Label: "Vehicle", Value: vehicle},
			{Label: "VIN", Value: optional(created.VIN)},
			{Label: "Service", Value: string(created.ServiceType)},
			{Label: "Preferred date", Value: optional(utils.NilIfEmpty(&preferred))},
			{Label: "Description", Value: created.Description},
		})
	})

	return created, nil
}

func (s *ServiceRequestService) ListServiceRequests(ctx context.Context, userID uuid.UUID) ([]model.ServiceRequest, error) {
	requests, err := s.requests.ListServiceRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []model.ServiceRequest{}
	}
	return requests, nil
}

type SellSubmissionService struct {
	submissions SellSubmissionStore
	jobs        job.Enqueuer
	logger      *zerolog.Logger
}

func NewSellSubmissionService(submissions SellSubmissionStore, jobs job.Enqueuer, logger *zerolog.Logger) *SellSubmissionService {
	return &SellSubmissionService{submissions: submissions, jobs: jobs, logger: logger}
}

type CreateSellSubmissionInput struct {
	UserID           *uuid.UUID
	Name             string
	Email            string
	Phone            *string
	Year             int
	Make             string
	Model            string
	Mileage          int
	VIN              *string
	Condition        model.VehicleCondition
	AskingPriceCents *int64
	Description      *string
	PhotoURLs        []string
}

func (s *SellSubmissionService) CreateSellSubmission(ctx context.Context, in CreateSellSubmissionInput) (*model.SellSubmission, error) {
	var vin *string
	if v := utils.NilIfEmpty(in.VIN); v != nil {
		upper := strings.ToUpper(*v)
		vin = &upper
	}

	created, err := s.submissions.CreateSellSubmission(ctx, &model.SellSubmission{
		UserID:           in.UserID,
		Name:             strings.TrimSpace(in.Name),
		Email:            utils.NormalizeEmail(in.Email),
		Phone:            utils.NilIfEmpty(in.Phone),
		Year:             in.Year,
		Make:             strings.TrimSpace(in.Make),
		Model:            strings.TrimSpace(in.Model),
		Mileage:          in.Mileage,
		VIN:              vin,
		Condition:        in.Condition,
		AskingPriceCents: in.AskingPriceCents,
		Description:      utils.NilIfEmpty(in.Description),
		PhotoURLs:        in.PhotoURLs,
	})
	if err != nil {
		return nil, err
	}

	ref := reference("SS", created.ID)
	vehicle := vehicleLabel(created.Year, created.Make, created.Model)

	asking := "-"
	if created.AskingPriceCents != nil {
		asking = "$" + strconv.FormatInt(*created.AskingPriceCents/100, 10)
	}

	job.Dispatch(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewSellSubmissionEmailTask(job.SellSubmissionEmailPayload{
			To:        created.Email,
			Name:      created.Name,
			Vehicle:   vehicle,
			Reference: ref,
		})
	})

	job.Dispatch(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewStaffNotificationTask("New sell submission "+ref, []email.Field{
			{Label: "Name", Value: created.Name},
			{Label: "Email", Value: created.Email},
			{Label: "Phone", Value: optional(created.Phone)},
			{Label: "Vehicle", Value: vehicle},
			{Label: "Mileage", Value: strconv.Itoa(created.Mileage)},
			{Label: "VIN", Value: optional(created.VIN)},
			{Label: "Condition", Value: string(created.Condition)},
			{Label: "Asking price", Value: asking},
			{Label: "Photos", Value: strconv.Itoa(len(created.PhotoURLs))},
			{Label: "Description", Value: optional(created.Description)},
		})
	})

	return created, nil
}

func (s *SellSubmissionService) ListSellSubmissions(ctx context.Context, userID uuid.UUID) ([]model.SellSubmission, error) {
	submissions, err := s.submissions.ListSellSubmissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []model.SellSubmission{}
	}
	return submissions, nil
}
