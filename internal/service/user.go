package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/utils"
	"github.com/magnetco/enthusiastauto-sub003/internal/model"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name  *string
	Phone *string
	Image *string
}

// UpdateProfile applies the provided fields. Blank values are ignored and a
// request with nothing left to change is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*model.User, error) {
	name := utils.NilIfEmpty(in.Name)
	phone := utils.NilIfEmpty(in.Phone)
	image := utils.NilIfEmpty(in.Image)

	if name == nil && phone == nil && image == nil {
		return nil, errs.NewBadRequestError("Provide at least one field to update", true, errs.Code("NOTHING_TO_UPDATE"), nil, nil)
	}

	return s.users.UpdateProfile(ctx, userID, name, phone, image)
}
