package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

func newTestCodec(t *testing.T) *security.TokenCodec {
	t.Helper()
	codec, err := security.NewTokenCodec(&config.JWTConfig{
		SecretKey:       testSecret,
		AccessTokenTTL:  "1h",
		RefreshTokenTTL: "168h",
	})
	require.NoError(t, err)
	return codec
}

var (
	mario = security.Claims{Username: "mario", Email: "mario@ezwallet.com", Role: model.RoleRegular, ID: "u1"}
	admin = security.Claims{Username: "admin", Email: "admin@ezwallet.com", Role: model.RoleAdmin, ID: "a1"}
)

// session : a valid access/refresh pair for claims
func session(t *testing.T, codec *security.TokenCodec, claims security.Claims) (string, string) {
	t.Helper()
	access, err := codec.IssueAccess(claims)
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh(claims)
	require.NoError(t, err)
	return access, refresh
}

func expiredToken(t *testing.T, claims security.Claims) string {
	t.Helper()
	claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newRequest(method, target, body, access, refresh string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		r.AddCookie(&http.Cookie{Name: security.AccessTokenCookie, Value: access})
	}
	if refresh != "" {
		r.AddCookie(&http.Cookie{Name: security.RefreshTokenCookie, Value: refresh})
	}
	return r
}

type envelope struct {
	Data                  json.RawMessage `json:"data"`
	RefreshedTokenMessage string          `json:"refreshedTokenMessage"`
	Error                 string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ===== MOCKS =====

type MockAuthenticationService struct{ mock.Mock }

func (m *MockAuthenticationService) Register(ctx context.Context, username, email, password, role string) error {
	args := m.Called(ctx, username, email, password, role)
	return args.Error(0)
}

func (m *MockAuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	args := m.Called(ctx, email, password)
	if p, ok := args.Get(0).(*model.TokensPair); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, email string) (*model.UserDeletion, error) {
	args := m.Called(ctx, email)
	if d, ok := args.Get(0).(*model.UserDeletion); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) CreateCategory(ctx context.Context, categoryType, color string) (*model.Category, error) {
	args := m.Called(ctx, categoryType, color)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).([]model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, oldType, newType, color string) (int64, error) {
	args := m.Called(ctx, oldType, newType, color)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryService) DeleteCategories(ctx context.Context, types []string) (int64, error) {
	args := m.Called(ctx, types)
	return args.Get(0).(int64), args.Error(1)
}

type MockTransactionService struct{ mock.Mock }

func (m *MockTransactionService) CreateTransaction(ctx context.Context, username, categoryType string, amount float64) (*model.Transaction, error) {
	args := m.Called(ctx, username, categoryType, amount)
	if tr, ok := args.Get(0).(*model.Transaction); ok {
		return tr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionService) ListAll(ctx context.Context) ([]model.Transaction, error) {
	args := m.Called(ctx)
	if tr, ok := args.Get(0).([]model.Transaction); ok {
		return tr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionService) ListByUser(ctx context.Context, username string, filter model.TransactionFilter) ([]model.Transaction, error) {
	args := m.Called(ctx, username, filter)
	if tr, ok := args.Get(0).([]model.Transaction); ok {
		return tr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionService) ListByUserAndCategory(ctx context.Context, username, category string) ([]model.Transaction, error) {
	args := m.Called(ctx, username, category)
	if tr, ok := args.Get(0).([]model.Transaction); ok {
		return tr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionService) ListByGroup(ctx context.Context, group *model.Group, category string) ([]model.Transaction, error) {
	args := m.Called(ctx, group, category)
	if tr, ok := args.Get(0).([]model.Transaction); ok {
		return tr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, username, id string) error {
	args := m.Called(ctx, username, id)
	return args.Error(0)
}

func (m *MockTransactionService) DeleteTransactions(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionService) ExportStatement(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

type MockGroupService struct{ mock.Mock }

func (m *MockGroupService) CreateGroup(ctx context.Context, name, creatorEmail string, memberEmails []string) (*model.GroupChange, error) {
	args := m.Called(ctx, name, creatorEmail, memberEmails)
	if c, ok := args.Get(0).(*model.GroupChange); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, name string) (*model.Group, error) {
	args := m.Called(ctx, name)
	if g, ok := args.Get(0).(*model.Group); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]*model.Group, error) {
	args := m.Called(ctx)
	if g, ok := args.Get(0).([]*model.Group); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupService) AddMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error) {
	args := m.Called(ctx, name, emails)
	if c, ok := args.Get(0).(*model.GroupChange); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupService) RemoveMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error) {
	args := m.Called(ctx, name, emails)
	if c, ok := args.Get(0).(*model.GroupChange); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
