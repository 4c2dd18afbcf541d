package repository

import (
	"context"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
)

// SessionRepository keeps the one outstanding refresh token of every user in users.refresh_token.
type SessionRepository struct {
	*config.Database
}

func NewSessionRepository(database *config.Database) *SessionRepository {
	return &SessionRepository{database}
}

// SetRefreshToken : overwrites the stored refresh token, the most recent login wins
func (r *SessionRepository) SetRefreshToken(ctx context.Context, userID, token string) error {
	query := `UPDATE users SET refresh_token = $2 WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, userID, token)
	if err != nil {
		return util.LogError("[SessionRepo] failed to store refresh token", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ClearRefreshToken : ends the session of a user
func (r *SessionRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token = NULL WHERE id = $1`

	if _, err := r.DB.ExecContext(ctx, query, userID); err != nil {
		return util.LogError("[SessionRepo] failed to clear refresh token", err)
	}
	return nil
}

// FindByRefreshToken : owner of exactly this refresh token, model.ErrNotFound otherwise
func (r *SessionRepository) FindByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE refresh_token = $1`

	var user model.User
	if err := r.DB.GetContext(ctx, &user, query, token); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
