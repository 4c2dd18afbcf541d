package service_test

import (
	"context"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmails(ctx context.Context, emails []string) ([]*model.User, error) {
	args := m.Called(ctx, emails)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) (*model.UserDeletion, error) {
	args := m.Called(ctx, userID)
	if d, ok := args.Get(0).(*model.UserDeletion); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) SetRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockSessionStore) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionStore) FindByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) IssueAccess(claims security.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) IssueRefresh(claims security.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) AccessTTL() time.Duration  { return time.Hour }
func (m *MockTokenIssuer) RefreshTTL() time.Duration { return 7 * 24 * time.Hour }

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).([]model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) FindByType(ctx context.Context, categoryType string) (*model.Category, error) {
	args := m.Called(ctx, categoryType)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, oldType string, category *model.Category) (int64, error) {
	args := m.Called(ctx, oldType, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) DeleteAndReassign(ctx context.Context, types []string, fallback string) (int64, error) {
	args := m.Called(ctx, types, fallback)
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetCategories(ctx context.Context, categories []model.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCacheRepository) GetCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).([]model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) InvalidateCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]model.Transaction, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]model.Transaction); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, username string, filter model.TransactionFilter) ([]model.Transaction, error) {
	args := m.Called(ctx, username, filter)
	if t, ok := args.Get(0).([]model.Transaction); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) ListByUsers(ctx context.Context, usernames []string, category string) ([]model.Transaction, error) {
	args := m.Called(ctx, usernames, category)
	if t, ok := args.Get(0).([]model.Transaction); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*model.Transaction); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

type MockGroupRepository struct{ mock.Mock }

func (m *MockGroupRepository) Create(ctx context.Context, name string, members []model.GroupMember) error {
	args := m.Called(ctx, name, members)
	return args.Error(0)
}

func (m *MockGroupRepository) FindByName(ctx context.Context, name string) (*model.Group, error) {
	args := m.Called(ctx, name)
	if g, ok := args.Get(0).(*model.Group); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupRepository) List(ctx context.Context) ([]*model.Group, error) {
	args := m.Called(ctx)
	if g, ok := args.Get(0).([]*model.Group); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupRepository) GroupedEmails(ctx context.Context, emails []string) ([]string, error) {
	args := m.Called(ctx, emails)
	if e, ok := args.Get(0).([]string); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupRepository) AddMembers(ctx context.Context, name string, members []model.GroupMember) error {
	args := m.Called(ctx, name, members)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveMembers(ctx context.Context, name string, emails []string) error {
	args := m.Called(ctx, name, emails)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
