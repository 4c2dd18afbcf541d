package handler

import (
	"net/http"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model/requestresponse"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
	authorizer ports.Authorizer
}

func NewUserHandler(userService ports.UserService, authorizer ports.Authorizer) *UserHandler {
	return &UserHandler{userService, authorizer}
}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} requestresponse.Envelope{data=[]requestresponse.UserData}
// @Failure 401 {object} requestresponse.ErrorResponse "The user must be an Admin"
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data := make([]requestresponse.UserData, 0, len(users))
	for _, u := range users {
		data = append(data, requestresponse.UserDataFromModel(u))
	}
	writeData(w, decision, data)
}

// GetUser godoc
// @Summary Get a user
// @Description Available to the user itself and to administrators.
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.UserData}
// @Failure 400 {object} requestresponse.ErrorResponse "user not found"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/{username} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	decision, ok := authorize(w, r, h.authorizer, security.User(username), security.Admin())
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, requestresponse.UserDataFromModel(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes a Regular user, its transactions and its group membership. A group left empty is deleted.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.DeleteUserRequest true "User to delete"
// @Success 200 {object} requestresponse.Envelope{data=model.UserDeletion}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	var req requestresponse.DeleteUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	deletion, err := h.UserService.DeleteUser(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, deletion)
}
