package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
	"github.com/magnetco/enthusiastauto-sub003/internal/validation"
)

type UserHandler struct {
	Handler
	users *service.UserService
	auth  *service.AuthService
}

func NewUserHandler(s *server.Server, users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
		auth:    auth,
	}
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
	Image *string `json:"image" validate:"omitempty,url,max=2048"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validation.Struct(r)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,bcryptmax"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,bcryptmax,nefield=CurrentPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) GetProfile(c echo.Context, _ *EmptyRequest) (*model.User, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	return h.users.GetProfile(c.Request().Context(), userID)
}

func (h *UserHandler) UpdateProfile(c echo.Context, req *UpdateProfileRequest) (*model.User, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	return h.users.UpdateProfile(c.Request().Context(), userID, service.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		Image: req.Image,
	})
}

func (h *UserHandler) ChangePassword(c echo.Context, req *ChangePasswordRequest) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	return h.auth.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword)
}
