package service

import (
	"context"
	"fmt"

	"github.com/waseet/event-social/internal/model"
	"github.com/waseet/event-social/internal/utils"
)

// UserService covers profile reads and updates for the authenticated user.
type UserService struct {
	users      UserRepository
	bcryptCost int
}

func NewUserService(users UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UpdateProfileInput carries the optional profile fields a user may
// change. Nil means "leave unchanged".
type UpdateProfileInput struct {
	FullName *string
	Password *string
}

// UpdateProfile applies the given changes to the user. A new password is
// bcrypt-hashed unless it already is a hash (the create/update idempotence
// guard), mirroring how registration stores it.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User, in UpdateProfileInput) (*model.User, error) {
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
