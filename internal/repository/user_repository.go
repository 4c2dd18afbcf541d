package repository

import (
	"context"
	"fmt"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
	"github.com/lib/pq"
)

const userColumns = `id, username, email, password_hash, role, refresh_token, created_at`

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : stores a new user, model.ErrAlreadyExists on a username/email clash
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
	INSERT INTO users (id, username, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		return translate(util.LogError("[UserRepo] failed to insert user", err))
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	if err := r.DB.GetContext(ctx, &user, query, arg); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmails : users owning any of the emails; unknown emails are simply absent
func (r *UserRepository) FindByEmails(ctx context.Context, emails []string) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ANY($1)`

	var users []*model.User
	if err := r.DB.SelectContext(ctx, &users, query, pq.Array(emails)); err != nil {
		return nil, util.LogError("[UserRepo] failed to look up users by email", err)
	}
	return users, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	if err := r.DB.GetContext(ctx, &exists, query, username, email); err != nil {
		return false, util.LogError("[UserRepo] failed to check user existence", err)
	}
	return exists, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, username ASC`

	var users []*model.User
	if err := r.DB.SelectContext(ctx, &users, query); err != nil {
		return nil, util.LogError("[UserRepo] failed to list users", err)
	}
	return users, nil
}

// DeleteUser : removes the user, its transactions and its group membership in one transaction.
// A group left without members is deleted too.
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) (*model.UserDeletion, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, util.LogError("[UserRepo] failed to begin transaction", err)
	}
	defer tx.Rollback()

	var user model.User
	if err := tx.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID); err != nil {
		return nil, translate(err)
	}

	deletion := &model.UserDeletion{}

	result, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE username = $1`, user.Username)
	if err != nil {
		return nil, util.LogError("[UserRepo] failed to delete transactions", err)
	}
	if deletion.DeletedTransactions, err = result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("[UserRepo] counting deleted transactions: %w", err)
	}

	var groupName string
	err = tx.GetContext(ctx, &groupName, `DELETE FROM group_members WHERE email = $1 RETURNING group_name`, user.Email)
	switch translate(err) {
	case nil:
		deletion.DeletedFromGroup = true
		_, err = tx.ExecContext(ctx,
			`DELETE FROM groups WHERE name = $1 AND NOT EXISTS (SELECT 1 FROM group_members WHERE group_name = $1)`,
			groupName)
		if err != nil {
			return nil, util.LogError("[UserRepo] failed to delete empty group", err)
		}
	case model.ErrNotFound:
	default:
		return nil, util.LogError("[UserRepo] failed to leave group", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return nil, util.LogError("[UserRepo] failed to delete user", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, util.LogError("[UserRepo] failed to commit", err)
	}
	return deletion, nil
}
