package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transactionMocks struct {
	transactions *MockTransactionRepository
	users        *MockUserRepository
	categories   *MockCategoryRepository
	storage      *MockS3Storage
}

func newTestTransactionService() (*service.TransactionService, *transactionMocks) {
	m := &transactionMocks{
		transactions: new(MockTransactionRepository),
		users:        new(MockUserRepository),
		categories:   new(MockCategoryRepository),
		storage:      new(MockS3Storage),
	}
	return service.NewTransactionService(m.transactions, m.users, m.categories, m.storage, 15*time.Minute), m
}

func TestCreateTransaction(t *testing.T) {
	svc, m := newTestTransactionService()
	ctx := context.Background()

	m.users.On("FindByUsername", ctx, "mario").Return(&model.User{Username: "mario"}, nil)
	m.categories.On("FindByType", ctx, "food").Return(&model.Category{Type: "food", Color: "red"}, nil)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(tr *model.Transaction) bool {
		return tr.Username == "mario" && tr.Type == "food" && tr.Amount == 12.5 && tr.ID != "" && !tr.Date.IsZero()
	})).Return(nil)

	transaction, err := svc.CreateTransaction(ctx, "mario", "food", 12.5)
	require.NoError(t, err)
	assert.Equal(t, "red", transaction.Color)
	m.transactions.AssertExpectations(t)
}

func TestCreateTransaction_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		svc, m := newTestTransactionService()
		m.users.On("FindByUsername", ctx, "ghost").Return(nil, model.ErrNotFound)
		_, err := svc.CreateTransaction(ctx, "ghost", "food", 1)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, m := newTestTransactionService()
		m.users.On("FindByUsername", ctx, "mario").Return(&model.User{Username: "mario"}, nil)
		m.categories.On("FindByType", ctx, "ghost").Return(nil, model.ErrNotFound)
		_, err := svc.CreateTransaction(ctx, "mario", "ghost", 1)
		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
	})

	t.Run("blank type", func(t *testing.T) {
		svc, _ := newTestTransactionService()
		_, err := svc.CreateTransaction(ctx, "mario", " ", 1)
		assert.ErrorIs(t, err, service.ErrMissingAttributes)
	})
}

func TestListByGroup(t *testing.T) {
	svc, m := newTestTransactionService()
	ctx := context.Background()

	group := &model.Group{Name: "family", Members: []model.GroupMember{
		{Email: "mario@ezwallet.com", UserID: "u1"},
		{Email: "luigi@ezwallet.com", UserID: "u2"},
	}}
	m.users.On("FindByEmails", ctx, []string{"mario@ezwallet.com", "luigi@ezwallet.com"}).Return([]*model.User{
		{Username: "mario", Email: "mario@ezwallet.com"},
		{Username: "luigi", Email: "luigi@ezwallet.com"},
	}, nil)
	m.categories.On("FindByType", ctx, "food").Return(&model.Category{Type: "food"}, nil)
	m.transactions.On("ListByUsers", ctx, []string{"mario", "luigi"}, "food").
		Return([]model.Transaction{{ID: "t1", Username: "luigi"}}, nil)

	transactions, err := svc.ListByGroup(ctx, group, "food")
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("own transaction", func(t *testing.T) {
		svc, m := newTestTransactionService()
		m.users.On("FindByUsername", ctx, "mario").Return(&model.User{Username: "mario"}, nil)
		m.transactions.On("FindByID", ctx, "t1").Return(&model.Transaction{ID: "t1", Username: "mario"}, nil)
		m.transactions.On("DeleteByID", ctx, "t1").Return(nil)

		require.NoError(t, svc.DeleteTransaction(ctx, "mario", "t1"))
		m.transactions.AssertExpectations(t)
	})

	t.Run("someone else's transaction", func(t *testing.T) {
		svc, m := newTestTransactionService()
		m.users.On("FindByUsername", ctx, "mario").Return(&model.User{Username: "mario"}, nil)
		m.transactions.On("FindByID", ctx, "t2").Return(&model.Transaction{ID: "t2", Username: "luigi"}, nil)

		assert.ErrorIs(t, svc.DeleteTransaction(ctx, "mario", "t2"), service.ErrTransactionNotFound)
		m.transactions.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}

func TestDeleteTransactions(t *testing.T) {
	ctx := context.Background()

	svc, m := newTestTransactionService()
	m.transactions.On("DeleteByIDs", ctx, []string{"t1", "t2"}).Return(int64(2), nil)
	m.transactions.On("DeleteByIDs", ctx, []string{"t1", "t9"}).Return(int64(0), model.ErrNotFound)

	count, err := svc.DeleteTransactions(ctx, []string{"t1", "t2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.DeleteTransactions(ctx, []string{"t1", "t9"})
	assert.ErrorIs(t, err, service.ErrTransactionNotFound)

	_, err = svc.DeleteTransactions(ctx, []string{"t1", ""})
	assert.ErrorIs(t, err, service.ErrMissingAttributes)
}

func TestExportStatement(t *testing.T) {
	svc, m := newTestTransactionService()
	ctx := context.Background()

	date := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	m.users.On("FindByUsername", ctx, "mario").Return(&model.User{Username: "mario"}, nil)
	m.transactions.On("ListByUser", ctx, "mario", model.TransactionFilter{}).Return([]model.Transaction{
		{ID: "t1", Username: "mario", Type: "food", Amount: 12.5, Date: date, Color: "red"},
	}, nil)

	var uploaded []byte
	var key string
	m.storage.On("PutObject", ctx, mock.AnythingOfType("string"), mock.Anything, "text/csv").
		Run(func(args mock.Arguments) {
			key = args.String(1)
			uploaded = args.Get(2).([]byte)
		}).Return(nil)
	m.storage.On("GeneratePresignedGetURL", ctx, mock.AnythingOfType("string"), 15*time.Minute).
		Return("https://s3.local/statement", nil)

	url, err := svc.ExportStatement(ctx, "mario")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/statement", url)
	assert.True(t, strings.HasPrefix(key, "statements/mario/"))
	assert.True(t, strings.HasSuffix(key, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(uploaded)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"_id", "username", "type", "amount", "date", "color"}, records[0])
	assert.Equal(t, []string{"t1", "mario", "food", "12.50", "2023-06-01T10:00:00Z", "red"}, records[1])
}

func TestExportStatement_UnknownUser(t *testing.T) {
	svc, m := newTestTransactionService()
	ctx := context.Background()

	m.users.On("FindByUsername", ctx, "ghost").Return(nil, model.ErrNotFound)

	_, err := svc.ExportStatement(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	m.storage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
