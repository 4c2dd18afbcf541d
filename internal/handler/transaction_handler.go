package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model/requestresponse"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

var errUsernameMismatch = errors.New("the username in the body doesn't match the one in the route")

type TransactionHandler struct {
	ports.TransactionService
	groups     ports.GroupService
	authorizer ports.Authorizer
}

func NewTransactionHandler(
	transactionService ports.TransactionService,
	groupService ports.GroupService,
	authorizer ports.Authorizer,
) *TransactionHandler {
	return &TransactionHandler{transactionService, groupService, authorizer}
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param username path string true "Owner"
// @Param body body requestresponse.TransactionRequest true "Transaction"
// @Success 200 {object} requestresponse.Envelope{data=model.Transaction}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/{username}/transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	decision, ok := authorize(w, r, h.authorizer, security.User(username))
	if !ok {
		return
	}

	var req requestresponse.TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Amount == "" {
		writeServiceError(w, service.ErrMissingAttributes)
		return
	}
	if req.Username != username {
		writeServiceError(w, errUsernameMismatch)
		return
	}
	amount, err := req.Amount.Float64()
	if err != nil {
		writeServiceError(w, service.ErrInvalidAmount)
		return
	}

	transaction, err := h.TransactionService.CreateTransaction(r.Context(), username, req.Type, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, transaction)
}

// ListAll godoc
// @Summary List every transaction
// @Tags Transactions
// @Produce json
// @Success 200 {object} requestresponse.Envelope{data=[]model.Transaction}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	transactions, err := h.TransactionService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, transactions)
}

// ListByUser godoc
// @Summary List a user's transactions
// @Description Filters apply to regular users and administrators alike. date excludes from and upTo.
// @Tags Transactions
// @Produce json
// @Param username path string true "Owner"
// @Param from query string false "First day, YYYY-MM-DD"
// @Param upTo query string false "Last day, YYYY-MM-DD"
// @Param date query string false "Single day, YYYY-MM-DD"
// @Param min query number false "Minimum amount"
// @Param max query number false "Maximum amount"
// @Success 200 {object} requestresponse.Envelope{data=[]model.Transaction}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/{username}/transactions [get]
func (h *TransactionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	decision, ok := authorize(w, r, h.authorizer, security.User(username), security.Admin())
	if !ok {
		return
	}

	filter, err := parseTransactionFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	transactions, err := h.TransactionService.ListByUser(r.Context(), username, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, transactions)
}

// ListByUserAndCategory godoc
// @Summary List a user's transactions of one category
// @Tags Transactions
// @Produce json
// @Param username path string true "Owner"
// @Param category path string true "Category type"
// @Success 200 {object} requestresponse.Envelope{data=[]model.Transaction}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/{username}/transactions/category/{category} [get]
func (h *TransactionHandler) ListByUserAndCategory(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	decision, ok := authorize(w, r, h.authorizer, security.User(username), security.Admin())
	if !ok {
		return
	}

	transactions, err := h.TransactionService.ListByUserAndCategory(r.Context(), username, chi.URLParam(r, "category"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, transactions)
}

// ListByGroup godoc
// @Summary List the transactions of a group's members
// @Tags Transactions
// @Produce json
// @Param name path string true "Group name"
// @Success 200 {object} requestresponse.Envelope{data=[]model.Transaction}
// @Failure 400 {object} requestresponse.ErrorResponse "group not found"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups/{name}/transactions [get]
func (h *TransactionHandler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	h.listByGroup(w, r, "")
}

// ListByGroupAndCategory godoc
// @Summary List the transactions of a group's members of one category
// @Tags Transactions
// @Produce json
// @Param name path string true "Group name"
// @Param category path string true "Category type"
// @Success 200 {object} requestresponse.Envelope{data=[]model.Transaction}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups/{name}/transactions/category/{category} [get]
func (h *TransactionHandler) ListByGroupAndCategory(w http.ResponseWriter, r *http.Request) {
	h.listByGroup(w, r, chi.URLParam(r, "category"))
}

func (h *TransactionHandler) listByGroup(w http.ResponseWriter, r *http.Request, category string) {
	group, err := h.groups.GetGroup(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	decision, ok := authorize(w, r, h.authorizer, security.Group(group.MemberEmails()), security.Admin())
	if !ok {
		return
	}

	transactions, err := h.TransactionService.ListByGroup(r.Context(), group, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, transactions)
}

// DeleteTransaction godoc
// @Summary Delete one of the caller's transactions
// @Tags Transactions
// @Accept json
// @Produce json
// @Param username path string true "Owner"
// @Param body body requestresponse.DeleteTransactionRequest true "Transaction id"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.MessageData}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/{username}/transactions [delete]
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	decision, ok := authorize(w, r, h.authorizer, security.User(username))
	if !ok {
		return
	}

	var req requestresponse.DeleteTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.TransactionService.DeleteTransaction(r.Context(), username, req.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, requestresponse.MessageData{Message: "Transaction deleted"})
}

// DeleteTransactions godoc
// @Summary Delete transactions
// @Description Either every id is deleted or none is.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param body body requestresponse.DeleteTransactionsRequest true "Transaction ids"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.CountData}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/transactions [delete]
func (h *TransactionHandler) DeleteTransactions(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	var req requestresponse.DeleteTransactionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	count, err := h.TransactionService.DeleteTransactions(r.Context(), req.IDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, requestresponse.CountData{Message: "Transactions deleted", Count: count})
}

// ExportStatement godoc
// @Summary Export a user's transactions
// @Description Uploads a CSV statement and returns a presigned download link.
// @Tags Transactions
// @Produce json
// @Param username path string true "Owner"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.ExportData}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/{username}/transactions/export [post]
func (h *TransactionHandler) ExportStatement(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	decision, ok := authorize(w, r, h.authorizer, security.User(username), security.Admin())
	if !ok {
		return
	}

	url, err := h.TransactionService.ExportStatement(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, requestresponse.ExportData{URL: url})
}
