package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("[UserService] listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepository.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("[UserService] looking up user: %w", err)
	}
	return user, nil
}

// DeleteUser : removes a Regular user together with its transactions and group membership
func (s *UserService) DeleteUser(ctx context.Context, email string) (*model.UserDeletion, error) {
	if util.Blank(email) {
		return nil, ErrMissingAttributes
	}
	if !util.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("[UserService] looking up user: %w", err)
	}
	if user.Role == model.RoleAdmin {
		return nil, ErrAdminDeletion
	}

	deletion, err := s.userRepository.DeleteUser(ctx, user.ID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("[UserService] deleting user: %w", err)
	}
	return deletion, nil
}
