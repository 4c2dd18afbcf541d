package handler

import (
	"context"
	"net/http"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model/requestresponse"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/go-chi/chi/v5"
)

type GroupHandler struct {
	ports.GroupService
	authorizer ports.Authorizer
}

func NewGroupHandler(groupService ports.GroupService, authorizer ports.Authorizer) *GroupHandler {
	return &GroupHandler{groupService, authorizer}
}

// CreateGroup godoc
// @Summary Create a group
// @Description The caller joins the group. Emails already grouped or unknown are skipped and reported.
// @Tags Groups
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateGroupRequest true "Group"
// @Success 200 {object} requestresponse.Envelope{data=model.GroupChange}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups [post]
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Simple())
	if !ok {
		return
	}

	var req requestresponse.CreateGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	change, err := h.GroupService.CreateGroup(r.Context(), req.Name, decision.Claims.Email, req.MemberEmails)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, change)
}

// ListGroups godoc
// @Summary List groups
// @Tags Groups
// @Produce json
// @Success 200 {object} requestresponse.Envelope{data=[]model.Group}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups [get]
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	groups, err := h.GroupService.ListGroups(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, groups)
}

// GetGroup godoc
// @Summary Get a group
// @Description Available to its members and to administrators.
// @Tags Groups
// @Produce json
// @Param name path string true "Group name"
// @Success 200 {object} requestresponse.Envelope{data=model.Group}
// @Failure 400 {object} requestresponse.ErrorResponse "group not found"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups/{name} [get]
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.GroupService.GetGroup(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	decision, ok := authorize(w, r, h.authorizer, security.Group(group.MemberEmails()), security.Admin())
	if !ok {
		return
	}
	writeData(w, decision, group)
}

type membershipChange func(ctx context.Context, name string, emails []string) (*model.GroupChange, error)

// changeMembers loads the group, authorizes the caller against it and applies change
func (h *GroupHandler) changeMembers(w http.ResponseWriter, r *http.Request, asAdmin bool, change membershipChange) {
	group, err := h.GroupService.GetGroup(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	req := security.Group(group.MemberEmails())
	if asAdmin {
		req = security.Admin()
	}
	decision, ok := authorize(w, r, h.authorizer, req)
	if !ok {
		return
	}

	var body requestresponse.MembersRequest
	if err := decodeJSON(w, r, &body); err != nil {
		return
	}

	result, err := change(r.Context(), group.Name, body.Emails)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, result)
}

// AddMembers godoc
// @Summary Add members to the caller's group
// @Tags Groups
// @Accept json
// @Produce json
// @Param name path string true "Group name"
// @Param body body requestresponse.MembersRequest true "Emails to add"
// @Success 200 {object} requestresponse.Envelope{data=model.GroupChange}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups/{name}/add [patch]
func (h *GroupHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, false, h.GroupService.AddMembers)
}

// InsertMembers godoc
// @Summary Add members to any group
// @Tags Groups
// @Accept json
// @Produce json
// @Param name path string true "Group name"
// @Param body body requestresponse.MembersRequest true "Emails to add"
// @Success 200 {object} requestresponse.Envelope{data=model.GroupChange}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups/{name}/insert [patch]
func (h *GroupHandler) InsertMembers(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, true, h.GroupService.AddMembers)
}

// RemoveMembers godoc
// @Summary Remove members from the caller's group
// @Description A group always keeps at least one member.
// @Tags Groups
// @Accept json
// @Produce json
// @Param name path string true "Group name"
// @Param body body requestresponse.MembersRequest true "Emails to remove"
// @Success 200 {object} requestresponse.Envelope{data=model.GroupChange}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups/{name}/remove [patch]
func (h *GroupHandler) RemoveMembers(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, false, h.GroupService.RemoveMembers)
}

// PullMembers godoc
// @Summary Remove members from any group
// @Tags Groups
// @Accept json
// @Produce json
// @Param name path string true "Group name"
// @Param body body requestresponse.MembersRequest true "Emails to remove"
// @Success 200 {object} requestresponse.Envelope{data=model.GroupChange}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups/{name}/pull [patch]
func (h *GroupHandler) PullMembers(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, true, h.GroupService.RemoveMembers)
}

// DeleteGroup godoc
// @Summary Delete a group
// @Tags Groups
// @Accept json
// @Produce json
// @Param body body requestresponse.DeleteGroupRequest true "Group name"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.MessageData}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/groups [delete]
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	decision, ok := authorize(w, r, h.authorizer, security.Admin())
	if !ok {
		return
	}

	var req requestresponse.DeleteGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.GroupService.DeleteGroup(r.Context(), req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, decision, requestresponse.MessageData{Message: "Group deleted successfully"})
}
