package ports

import (
	"context"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	ListAll(ctx context.Context) ([]model.Transaction, error)
	ListByUser(ctx context.Context, username string, filter model.TransactionFilter) ([]model.Transaction, error)
	ListByUsers(ctx context.Context, usernames []string, category string) ([]model.Transaction, error)
	FindByID(ctx context.Context, id string) (*model.Transaction, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

type TransactionService interface {
	CreateTransaction(ctx context.Context, username, categoryType string, amount float64) (*model.Transaction, error)
	ListAll(ctx context.Context) ([]model.Transaction, error)
	ListByUser(ctx context.Context, username string, filter model.TransactionFilter) ([]model.Transaction, error)
	ListByUserAndCategory(ctx context.Context, username, category string) ([]model.Transaction, error)
	ListByGroup(ctx context.Context, group *model.Group, category string) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, username, id string) error
	DeleteTransactions(ctx context.Context, ids []string) (int64, error)
	ExportStatement(ctx context.Context, username string) (string, error)
}
