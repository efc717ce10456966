package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/magnetco/enthusiastauto-sub003/internal/cache"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/job"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/utils"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/sqlerr"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	userEmailConstraint = "users_email_key"

	// sessionCacheTTL bounds how long a revoked session can still be served
	// from another instance's cache.
	sessionCacheTTL = time.Minute

	resetTokenBytes = 32
)

// PasswordResetMessage is returned for every reset request so the response
// does not reveal whether an account exists.
const PasswordResetMessage = "If an account exists for that email, a password reset link is on its way."

var (
	errInvalidCredentials = errs.NewUnauthorizedError("Invalid email or password", true)
	errInvalidResetToken  = errs.NewBadRequestError("This password reset link is invalid or has expired", true, errs.Code("INVALID_RESET_TOKEN"), nil, nil)
	errSessionExpired     = errs.NewUnauthorizedError("Your session has expired, please sign in again", true)
)

// dummyHash is compared against when the email is unknown so a failed login
// costs the same either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("enthusiastauto-dummy-password"), bcrypt.DefaultCost)

type AuthService struct {
	users    UserStore
	sessions SessionStore
	tokens   TokenStore
	jobs     job.Enqueuer
	cache    cache.Store
	manager  *TokenManager
	cfg      config.AuthConfig
	logger   *zerolog.Logger
	now      func() time.Time
	cost     int
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	tokens TokenStore,
	jobs job.Enqueuer,
	store cache.Store,
	cfg config.AuthConfig,
	logger *zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		jobs:     jobs,
		cache:    store,
		manager:  NewTokenManager(cfg.SecretKey),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IP        string
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

// hash reports passwords bcrypt cannot take as a field error on field.
func (s *AuthService) hash(password, field string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.NewBadRequestError(
			"Validation failed",
			true,
			nil,
			[]errs.FieldError{{Field: field, Error: "must not exceed 72 bytes"}},
			nil,
		)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Signup creates a password account. A duplicate email is a 400 with a
// field error on email.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	email := utils.NormalizeEmail(in.Email)

	hashed, err := s.hash(in.Password, "password")
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, utils.NilIfEmpty(&in.Name), email, hashed)
	if err != nil {
		if sqlerr.IsUniqueViolation(err, userEmailConstraint) {
			return nil, errs.NewBadRequestError(
				"An account with this email already exists",
				true,
				errs.Code("USER_ALREADY_EXISTS"),
				[]errs.FieldError{{Field: "email", Error: "is already taken"}},
				nil,
			)
		}
		return nil, err
	}

	job.Dispatch(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewWelcomeEmailTask(user.Email, displayName(user))
	})

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, utils.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	expiresAt := s.now().Add(s.cfg.SessionTTL)
	session, err := s.sessions.CreateSession(ctx, user.ID, expiresAt, utils.NilIfEmpty(&in.UserAgent), utils.NilIfEmpty(&in.IP))
	if err != nil {
		return nil, err
	}

	token, err := s.manager.Issue(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

// Authenticate resolves a bearer token to a live session. Sessions are cached
// briefly so each request does not hit the database.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		return nil, errSessionExpired
	}
	userID, _ := claims.UserID()

	session, ok, err := cache.GetJSON[model.Session](ctx, s.cache, sessionKey(claims.SessionID))
	if err != nil {
		s.logger.Warn().Err(err).Msg("session cache lookup failed")
	}
	if !ok {
		found, err := s.sessions.GetSession(ctx, claims.SessionID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, errSessionExpired
			}
			return nil, err
		}
		session = *found

		ttl := sessionCacheTTL
		if remaining := session.ExpiresAt.Sub(s.now()); remaining < ttl {
			ttl = remaining
		}
		if ttl > 0 {
			if err := cache.SetJSON(ctx, s.cache, sessionKey(session.ID), session, ttl); err != nil {
				s.logger.Warn().Err(err).Msg("session cache store failed")
			}
		}
	}

	if session.Expired(s.now()) || session.UserID != userID {
		return nil, errSessionExpired
	}

	return &Identity{UserID: session.UserID, SessionID: session.ID}, nil
}

func (s *AuthService) evictSessions(ctx context.Context, ids ...uuid.UUID) {
	for _, id := range ids {
		if err := s.cache.Delete(ctx, sessionKey(id)); err != nil {
			s.logger.Warn().Err(err).Str("session_id", id.String()).Msg("failed to evict cached session")
		}
	}
}

func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.evictSessions(ctx, sessionID)
	return nil
}

// RequestPasswordReset stores a hashed single-use token and emails the raw
// one. Unknown emails succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := utils.RandomToken(resetTokenBytes)
	if err != nil {
		return err
	}

	err = s.tokens.ReplaceToken(ctx, model.VerificationToken{
		Identifier: user.Email,
		TokenHash:  utils.HashToken(token),
		Purpose:    model.TokenPurposePasswordReset,
		ExpiresAt:  s.now().Add(s.cfg.ResetTokenTTL),
	})
	if err != nil {
		return err
	}

	job.Dispatch(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewPasswordResetEmailTask(user.Email, displayName(user), token, s.cfg.ResetTokenTTL)
	})

	return nil
}

type ConfirmPasswordResetInput struct {
	Email    string
	Token    string
	Password string
}

// ConfirmPasswordReset consumes the token, sets the new password and revokes
// every session of the account. The password is hashed before the token is
// consumed so a rejected password leaves the link usable.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, in ConfirmPasswordResetInput) error {
	email := utils.NormalizeEmail(in.Email)

	hashed, err := s.hash(in.Password, "password")
	if err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errInvalidResetToken
		}
		return err
	}

	token, err := s.tokens.ConsumeToken(ctx, email, utils.HashToken(strings.TrimSpace(in.Token)), model.TokenPurposePasswordReset)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errInvalidResetToken
		}
		return err
	}
	if !token.ExpiresAt.After(s.now()) {
		return errInvalidResetToken
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}

	revoked, err := s.sessions.DeleteUserSessions(ctx, user.ID)
	if err != nil {
		return err
	}
	s.evictSessions(ctx, revoked...)

	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.HasPassword() || bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(current)) != nil {
		return errs.NewBadRequestError(
			"Current password is incorrect",
			true,
			errs.Code("INVALID_CURRENT_PASSWORD"),
			[]errs.FieldError{{Field: "currentPassword", Error: "is incorrect"}},
			nil,
		)
	}

	hashed, err := s.hash(next, "newPassword")
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hashed)
}

func displayName(u *model.User) string {
	if u.Name != nil && *u.Name != "" {
		return strings.Fields(*u.Name)[0]
	}
	return ""
}
