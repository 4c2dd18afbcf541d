package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
	"github.com/google/uuid"
)

type AuthenticationService struct {
	userRepository ports.UserRepository
	sessions       ports.SessionStore
	tokens         ports.TokenIssuer
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	sessions ports.SessionStore,
	tokens ports.TokenIssuer,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		sessions:       sessions,
		tokens:         tokens,
	}
}

// Register : creates a Regular or Admin account. No tokens are issued.
func (s *AuthenticationService) Register(ctx context.Context, username, email, password, role string) error {
	if util.Blank(username, email, password) {
		return ErrMissingAttributes
	}
	email = strings.TrimSpace(email)
	if !util.IsValidEmail(email) {
		return ErrInvalidEmail
	}

	exists, err := s.userRepository.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return fmt.Errorf("[AuthService] checking existing user: %w", err)
	}
	if exists {
		return ErrAlreadyRegistered
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return util.LogError("[AuthService] failed to hash password", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("[AuthService] creating user: %w", err)
	}
	return nil
}

// Login : checks the credentials, issues a token pair and stores the refresh token as the
// user's only session.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	if util.Blank(email, password) {
		return nil, ErrMissingAttributes
	}
	if !util.HasSingleAt(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrNeedRegister
	} else if err != nil {
		return nil, fmt.Errorf("[AuthService] looking up user: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrWrongCredentials
	}

	claims := security.Claims{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		ID:       user.ID,
	}
	accessToken, err := s.tokens.IssueAccess(claims)
	if err != nil {
		return nil, util.LogError("[AuthService] failed to issue access token", err)
	}
	refreshToken, err := s.tokens.IssueRefresh(claims)
	if err != nil {
		return nil, util.LogError("[AuthService] failed to issue refresh token", err)
	}

	if err := s.sessions.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("[AuthService] saving refresh token: %w", err)
	}

	return &model.TokensPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout : ends the session owning refreshToken
func (s *AuthenticationService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrLoggedOut
	}

	user, err := s.sessions.FindByRefreshToken(ctx, refreshToken)
	if errors.Is(err, model.ErrNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return fmt.Errorf("[AuthService] looking up session: %w", err)
	}

	if err := s.sessions.ClearRefreshToken(ctx, user.ID); err != nil {
		return fmt.Errorf("[AuthService] clearing refresh token: %w", err)
	}
	return nil
}
