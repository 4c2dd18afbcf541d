package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
	"github.com/google/uuid"
)

type TransactionService struct {
	transactions ports.TransactionRepository
	users        ports.UserRepository
	categories   ports.CategoryRepository
	storage      ports.S3Storage
	exportTTL    time.Duration
	now          func() time.Time
}

func NewTransactionService(
	transactions ports.TransactionRepository,
	users ports.UserRepository,
	categories ports.CategoryRepository,
	storage ports.S3Storage,
	exportTTL time.Duration,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		users:        users,
		categories:   categories,
		storage:      storage,
		exportTTL:    exportTTL,
		now:          time.Now,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, username, categoryType string, amount float64) (*model.Transaction, error) {
	if util.Blank(username, categoryType) {
		return nil, ErrMissingAttributes
	}
	if err := s.userExists(ctx, username); err != nil {
		return nil, err
	}
	category, err := s.category(ctx, categoryType)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:       uuid.New().String(),
		Username: username,
		Type:     category.Type,
		Amount:   amount,
		Date:     s.now().UTC(),
	}
	if err := s.transactions.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("[TransactionService] creating transaction: %w", err)
	}
	transaction.Color = category.Color
	return transaction, nil
}

func (s *TransactionService) ListAll(ctx context.Context) ([]model.Transaction, error) {
	transactions, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("[TransactionService] listing transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionService) ListByUser(ctx context.Context, username string, filter model.TransactionFilter) ([]model.Transaction, error) {
	if err := s.userExists(ctx, username); err != nil {
		return nil, err
	}
	transactions, err := s.transactions.ListByUser(ctx, username, filter)
	if err != nil {
		return nil, fmt.Errorf("[TransactionService] listing transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionService) ListByUserAndCategory(ctx context.Context, username, category string) ([]model.Transaction, error) {
	if err := s.userExists(ctx, username); err != nil {
		return nil, err
	}
	if _, err := s.category(ctx, category); err != nil {
		return nil, err
	}
	transactions, err := s.transactions.ListByUsers(ctx, []string{username}, category)
	if err != nil {
		return nil, fmt.Errorf("[TransactionService] listing transactions: %w", err)
	}
	return transactions, nil
}

// ListByGroup : transactions of every member of group, of one category unless it is empty
func (s *TransactionService) ListByGroup(ctx context.Context, group *model.Group, category string) ([]model.Transaction, error) {
	if category != "" {
		if _, err := s.category(ctx, category); err != nil {
			return nil, err
		}
	}

	members, err := s.users.FindByEmails(ctx, group.MemberEmails())
	if err != nil {
		return nil, fmt.Errorf("[TransactionService] resolving group members: %w", err)
	}
	usernames := make([]string, 0, len(members))
	for _, u := range members {
		usernames = append(usernames, u.Username)
	}

	transactions, err := s.transactions.ListByUsers(ctx, usernames, category)
	if err != nil {
		return nil, fmt.Errorf("[TransactionService] listing transactions: %w", err)
	}
	return transactions, nil
}

// DeleteTransaction : id must exist and belong to username
func (s *TransactionService) DeleteTransaction(ctx context.Context, username, id string) error {
	if util.Blank(id) {
		return ErrMissingAttributes
	}
	if err := s.userExists(ctx, username); err != nil {
		return err
	}

	transaction, err := s.transactions.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return ErrTransactionNotFound
	} else if err != nil {
		return fmt.Errorf("[TransactionService] looking up transaction: %w", err)
	}
	if transaction.Username != username {
		return ErrTransactionNotFound
	}

	if err := s.transactions.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("[TransactionService] deleting transaction: %w", err)
	}
	return nil
}

// DeleteTransactions : deletes every id or none of them
func (s *TransactionService) DeleteTransactions(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 || util.Blank(ids...) {
		return 0, ErrMissingAttributes
	}

	count, err := s.transactions.DeleteByIDs(ctx, ids)
	if errors.Is(err, model.ErrNotFound) {
		return 0, ErrTransactionNotFound
	} else if err != nil {
		return 0, fmt.Errorf("[TransactionService] deleting transactions: %w", err)
	}
	return count, nil
}

// ExportStatement : uploads the user's transactions as CSV and returns a temporary download link
func (s *TransactionService) ExportStatement(ctx context.Context, username string) (string, error) {
	transactions, err := s.ListByUser(ctx, username, model.TransactionFilter{})
	if err != nil {
		return "", err
	}

	body, err := statementCSV(transactions)
	if err != nil {
		return "", util.LogError("[TransactionService] failed to render statement", err)
	}

	key := fmt.Sprintf("statements/%s/%s.csv", username, s.now().UTC().Format("20060102T150405Z"))
	if err := s.storage.PutObject(ctx, key, body, "text/csv"); err != nil {
		return "", fmt.Errorf("[TransactionService] uploading statement: %w", err)
	}

	url, err := s.storage.GeneratePresignedGetURL(ctx, key, s.exportTTL)
	if err != nil {
		return "", fmt.Errorf("[TransactionService] presigning statement: %w", err)
	}
	return url, nil
}

func statementCSV(transactions []model.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"_id", "username", "type", "amount", "date", "color"}); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		record := []string{
			t.ID,
			t.Username,
			t.Type,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Date.UTC().Format(time.RFC3339),
			t.Color,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func (s *TransactionService) userExists(ctx context.Context, username string) error {
	_, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return fmt.Errorf("[TransactionService] looking up user: %w", err)
	}
	return nil
}

func (s *TransactionService) category(ctx context.Context, categoryType string) (*model.Category, error) {
	category, err := s.categories.FindByType(ctx, categoryType)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrCategoryNotFound
	} else if err != nil {
		return nil, fmt.Errorf("[TransactionService] looking up category: %w", err)
	}
	return category, nil
}
