package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
	"github.com/magnetco/enthusiastauto-sub003/internal/repository"
)

func notFound(table string) error {
	return fmt.Errorf("failed to collect row from table:%s: %w", table, pgx.ErrNoRows)
}

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*model.User
	calls int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]*model.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, name *string, email, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return nil, &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}
		}
	}
	hash := passwordHash
	u := &model.User{Name: name, Email: email, PasswordHash: &hash}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID] = u
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, notFound("users")
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, notFound("users")
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id uuid.UUID, name, phone, image *string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, notFound("users")
	}
	if name != nil {
		u.Name = name
	}
	if phone != nil {
		u.Phone = phone
	}
	if image != nil {
		u.Image = image
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return notFound("users")
	}
	u.PasswordHash = &passwordHash
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.Session
	gets     int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[uuid.UUID]*model.Session{}}
}

func (f *fakeSessions) CreateSession(_ context.Context, userID uuid.UUID, expiresAt time.Time, userAgent, ip *string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &model.Session{ID: uuid.New(), UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now(), UserAgent: userAgent, IP: ip}
	f.sessions[s.ID] = s
	copied := *s
	return &copied, nil
}

func (f *fakeSessions) GetSession(_ context.Context, id uuid.UUID) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if s, ok := f.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, notFound("sessions")
}

func (f *fakeSessions) DeleteSession(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessions) DeleteUserSessions(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for id, s := range f.sessions {
		if s.UserID == userID {
			ids = append(ids, id)
			delete(f.sessions, id)
		}
	}
	return ids, nil
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens []model.VerificationToken
}

func (f *fakeTokens) ReplaceToken(_ context.Context, token model.VerificationToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.Identifier != token.Identifier || t.Purpose != token.Purpose {
			kept = append(kept, t)
		}
	}
	f.tokens = append(kept, token)
	return nil
}

func (f *fakeTokens) ConsumeToken(_ context.Context, identifier, tokenHash, purpose string) (*model.VerificationToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tokens {
		if t.Identifier == identifier && t.TokenHash == tokenHash && t.Purpose == purpose {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return &t, nil
		}
	}
	return nil, notFound("verification_tokens")
}

type fakeVehicles struct {
	mu         sync.Mutex
	vehicles   map[uuid.UUID]bool
	candidates []model.Candidate
	history    map[uuid.UUID][]repository.HistoryVehicle
	views      []uuid.UUID
	listCalls  int
}

func newFakeVehicles(ids ...uuid.UUID) *fakeVehicles {
	f := &fakeVehicles{vehicles: map[uuid.UUID]bool{}, history: map[uuid.UUID][]repository.HistoryVehicle{}}
	for _, id := range ids {
		f.vehicles[id] = true
	}
	return f
}

func (f *fakeVehicles) VehicleExists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vehicles[id], nil
}

func (f *fakeVehicles) ListCandidates(context.Context) ([]model.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.candidates, nil
}

func (f *fakeVehicles) ListUserHistory(_ context.Context, userID uuid.UUID, _ int) ([]repository.HistoryVehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history[userID], nil
}

func (f *fakeVehicles) RecordView(_ context.Context, vehicleID uuid.UUID, _ *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, vehicleID)
	return nil
}

type fakeFavorites struct {
	mu        sync.Mutex
	favorites map[[2]uuid.UUID]model.Favorite
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{favorites: map[[2]uuid.UUID]model.Favorite{}}
}

func (f *fakeFavorites) CreateFavorite(_ context.Context, userID, vehicleID uuid.UUID) (*model.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uuid.UUID{userID, vehicleID}
	if _, ok := f.favorites[key]; ok {
		return nil, &pgconn.PgError{Code: "23505", TableName: "favorites", ConstraintName: repository.FavoriteUniqueConstraint}
	}
	fav := model.Favorite{ID: uuid.New(), UserID: userID, VehicleID: vehicleID, CreatedAt: time.Now()}
	f.favorites[key] = fav
	return &fav, nil
}

func (f *fakeFavorites) DeleteFavorite(_ context.Context, userID, vehicleID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uuid.UUID{userID, vehicleID}
	_, ok := f.favorites[key]
	delete(f.favorites, key)
	return ok, nil
}

func (f *fakeFavorites) IsFavorite(_ context.Context, userID, vehicleID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.favorites[[2]uuid.UUID{userID, vehicleID}]
	return ok, nil
}

func (f *fakeFavorites) ListFavorites(_ context.Context, userID uuid.UUID) ([]model.FavoriteWithVehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.FavoriteWithVehicle
	for key, fav := range f.favorites {
		if key[0] == userID {
			out = append(out, model.FavoriteWithVehicle{Favorite: fav, Vehicle: model.VehicleSummary{ID: fav.VehicleID}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Queue: "default", Type: task.Type()}, nil
}

func (f *fakeEnqueuer) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.tasks))
	for i, t := range f.tasks {
		out[i] = t.Type()
	}
	return out
}

type fakeForms struct {
	mu          sync.Mutex
	requests    []model.ServiceRequest
	submissions []model.SellSubmission
}

func (f *fakeForms) CreateServiceRequest(_ context.Context, req *model.ServiceRequest) (*model.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := *req
	created.ID = uuid.New()
	created.Status = model.ServiceRequestStatusPending
	f.requests = append(f.requests, created)
	return &created, nil
}

func (f *fakeForms) ListServiceRequests(_ context.Context, userID uuid.UUID) ([]model.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ServiceRequest
	for _, r := range f.requests {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeForms) CreateSellSubmission(_ context.Context, sub *model.SellSubmission) (*model.SellSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := *sub
	created.ID = uuid.New()
	created.Status = model.SellSubmissionStatusNew
	f.submissions = append(f.submissions, created)
	return &created, nil
}

func (f *fakeForms) ListSellSubmissions(context.Context, uuid.UUID) ([]model.SellSubmission, error) {
	return nil, nil
}
