package ports

import (
	"context"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
)

type AuthenticationService interface {
	Register(ctx context.Context, username, email, password, role string) error
	Login(ctx context.Context, email, password string) (*model.TokensPair, error)
	Logout(ctx context.Context, refreshToken string) error
}
