package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/middleware"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
	"github.com/magnetco/enthusiastauto-sub003/internal/validation"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,bcryptmax"`
}

func (r *SignupRequest) Validate() error {
	return validation.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,bcryptmax"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *PasswordResetRequest) Validate() error {
	return validation.Struct(r)
}

type ConfirmPasswordResetRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required,max=128"`
	Password string `json:"password" validate:"required,min=8,bcryptmax"`
}

func (r *ConfirmPasswordResetRequest) Validate() error {
	return validation.Struct(r)
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) Signup(c echo.Context, req *SignupRequest) (*model.User, error) {
	return h.auth.Signup(c.Request().Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
}

// Login returns the session token and also sets it as an HttpOnly cookie
// for the storefront.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*service.LoginResult, error) {
	result, err := h.auth.Login(c.Request().Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
	})
	if err != nil {
		return nil, err
	}

	c.SetCookie(h.sessionCookie(result.Token, result.ExpiresAt))
	return result, nil
}

func (h *AuthHandler) Logout(c echo.Context, _ *EmptyRequest) error {
	sessionID, ok := middleware.SessionUUID(c)
	if !ok {
		return errs.NewUnauthorizedError("Unauthorized", false)
	}
	if err := h.auth.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return nil
}

func (h *AuthHandler) RequestPasswordReset(c echo.Context, req *PasswordResetRequest) (*MessageResponse, error) {
	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: service.PasswordResetMessage}, nil
}

func (h *AuthHandler) ConfirmPasswordReset(c echo.Context, req *ConfirmPasswordResetRequest) error {
	return h.auth.ConfirmPasswordReset(c.Request().Context(), service.ConfirmPasswordResetInput{
		Email:    req.Email,
		Token:    req.Token,
		Password: req.Password,
	})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.server.Config.Auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.server.Config.Primary.Env != "local",
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
