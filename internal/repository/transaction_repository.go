package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
	"github.com/lib/pq"
)

const transactionSelect = `
	SELECT t.id, t.username, t.type, t.amount, t.date, COALESCE(c.color, '') AS color
	FROM transactions t
	LEFT JOIN categories c ON c.type = t.type`

type TransactionRepository struct {
	*config.Database
}

func NewTransactionRepository(database *config.Database) *TransactionRepository {
	return &TransactionRepository{database}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	query := `INSERT INTO transactions (id, username, type, amount, date) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctx, query,
		transaction.ID,
		transaction.Username,
		transaction.Type,
		transaction.Amount,
		transaction.Date,
	)
	if err != nil {
		return util.LogError("[TransactionRepo] failed to insert transaction", err)
	}
	return nil
}

func (r *TransactionRepository) ListAll(ctx context.Context) ([]model.Transaction, error) {
	return r.list(ctx, transactionSelect+` ORDER BY t.date DESC`)
}

// ListByUser : transactions of username matching every set field of filter
func (r *TransactionRepository) ListByUser(ctx context.Context, username string, filter model.TransactionFilter) ([]model.Transaction, error) {
	conditions := []string{"t.username = $1"}
	args := []interface{}{username}

	add := func(condition string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}
	if filter.From != nil {
		add("t.date >= $%d", *filter.From)
	}
	if filter.Before != nil {
		add("t.date < $%d", *filter.Before)
	}
	if filter.MinAmount != nil {
		add("t.amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add("t.amount <= $%d", *filter.MaxAmount)
	}

	query := transactionSelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY t.date DESC`
	return r.list(ctx, query, args...)
}

// ListByUsers : transactions of any of usernames, restricted to category unless it is empty
func (r *TransactionRepository) ListByUsers(ctx context.Context, usernames []string, category string) ([]model.Transaction, error) {
	if category == "" {
		return r.list(ctx, transactionSelect+` WHERE t.username = ANY($1) ORDER BY t.date DESC`, pq.Array(usernames))
	}
	return r.list(ctx, transactionSelect+` WHERE t.username = ANY($1) AND t.type = $2 ORDER BY t.date DESC`,
		pq.Array(usernames), category)
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	if err := r.DB.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, util.LogError("[TransactionRepo] failed to list transactions", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.DB.GetContext(ctx, &transaction, transactionSelect+` WHERE t.id = $1`, id); err != nil {
		return nil, translate(err)
	}
	return &transaction, nil
}

func (r *TransactionRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return translate(util.LogError("[TransactionRepo] failed to delete transaction", err))
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteByIDs : all or nothing, model.ErrNotFound if any id is unknown. Repeated ids count once.
func (r *TransactionRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	ids = distinct(ids)

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, util.LogError("[TransactionRepo] failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, translate(util.LogError("[TransactionRepo] failed to delete transactions", err))
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("[TransactionRepo] counting deleted transactions: %w", err)
	}
	if count != int64(len(ids)) {
		return 0, model.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, util.LogError("[TransactionRepo] failed to commit", err)
	}
	return count, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
