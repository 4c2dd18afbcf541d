package handler

import (
	"net/http"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model/requestresponse"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	ports.CategoryService
	authorizer ports.Authorizer
}

func NewCategoryHandler(categoryService ports.CategoryService, authorizer ports.Authorizer) *CategoryHandler {
	return &CategoryHandler{categoryService, authorizer}
}

// CreateCategory godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body requestresponse.CategoryRequest true "Category"
// @Success 200 {object} requestresponse.Envelope{data=model.Category}
// @Failure 400 {object} requestresponse.ErrorResponse "category already exists"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	var req requestresponse.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	category, err := h.CategoryService.CreateCategory(r.Context(), req.Type, req.Color)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, category)
}

// ListCategories godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} requestresponse.Envelope{data=[]model.Category}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Simple())
	if !ok {
		return
	}

	categories, err := h.CategoryService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, categories)
}

// UpdateCategory godoc
// @Summary Rename or recolor a category
// @Description Transactions of the old type are moved to the new one.
// @Tags Categories
// @Accept json
// @Produce json
// @Param type path string true "Current type"
// @Param body body requestresponse.CategoryRequest true "New type and color"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.CountData}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/categories/{type} [patch]
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	var req requestresponse.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	count, err := h.CategoryService.UpdateCategory(r.Context(), chi.URLParam(r, "type"), req.Type, req.Color)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, requestresponse.CountData{Message: "Category edited successfully", Count: count})
}

// DeleteCategories godoc
// @Summary Delete categories
// @Description At least one category survives. Transactions of deleted categories move to the oldest survivor.
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body requestresponse.DeleteCategoriesRequest true "Types to delete"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.CountData}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/categories [delete]
func (h *CategoryHandler) DeleteCategories(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	var req requestresponse.DeleteCategoriesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	count, err := h.CategoryService.DeleteCategories(r.Context(), req.Types)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, requestresponse.CountData{Message: "Categories deleted", Count: count})
}
