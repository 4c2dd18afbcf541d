package service_test

import (
	"context"
	"testing"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGroupService() (*service.GroupService, *MockGroupRepository, *MockUserRepository) {
	groups := new(MockGroupRepository)
	users := new(MockUserRepository)
	return service.NewGroupService(groups, users), groups, users
}

func family(emails ...string) *model.Group {
	group := &model.Group{Name: "family"}
	for _, e := range emails {
		group.Members = append(group.Members, model.GroupMember{Email: e})
	}
	return group
}

func TestCreateGroup(t *testing.T) {
	svc, groups, users := newTestGroupService()
	ctx := context.Background()

	requested := []string{"luigi@ezwallet.com", "ghost@ezwallet.com", "peach@ezwallet.com"}

	groups.On("FindByName", ctx, "family").Return(nil, model.ErrNotFound).Once()
	groups.On("GroupedEmails", ctx, []string{"mario@ezwallet.com"}).Return([]string{}, nil)
	users.On("FindByEmails", ctx, requested).Return([]*model.User{
		{ID: "u2", Email: "luigi@ezwallet.com"},
		{ID: "u3", Email: "peach@ezwallet.com"},
	}, nil)
	groups.On("GroupedEmails", ctx, requested).Return([]string{"peach@ezwallet.com"}, nil)
	users.On("FindByEmail", ctx, "mario@ezwallet.com").Return(&model.User{ID: "u1", Email: "mario@ezwallet.com"}, nil)
	groups.On("Create", ctx, "family", []model.GroupMember{
		{Email: "mario@ezwallet.com", UserID: "u1"},
		{Email: "luigi@ezwallet.com", UserID: "u2"},
	}).Return(nil)
	groups.On("FindByName", ctx, "family").Return(family("luigi@ezwallet.com", "mario@ezwallet.com"), nil).Once()

	change, err := svc.CreateGroup(ctx, "family", "mario@ezwallet.com",
		append([]string{"mario@ezwallet.com"}, requested...))
	require.NoError(t, err)
	assert.Equal(t, []string{"peach@ezwallet.com"}, change.AlreadyInGroup)
	assert.Equal(t, []string{"ghost@ezwallet.com"}, change.MembersNotFound)
	assert.Len(t, change.Group.Members, 2)
	groups.AssertExpectations(t)
}

func TestCreateGroup_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("name taken", func(t *testing.T) {
		svc, groups, _ := newTestGroupService()
		groups.On("FindByName", ctx, "family").Return(family("x@ezwallet.com"), nil)

		_, err := svc.CreateGroup(ctx, "family", "mario@ezwallet.com", []string{"luigi@ezwallet.com"})
		assert.ErrorIs(t, err, service.ErrGroupExists)
	})

	t.Run("creator already grouped", func(t *testing.T) {
		svc, groups, _ := newTestGroupService()
		groups.On("FindByName", ctx, "family").Return(nil, model.ErrNotFound)
		groups.On("GroupedEmails", ctx, []string{"mario@ezwallet.com"}).Return([]string{"mario@ezwallet.com"}, nil)

		_, err := svc.CreateGroup(ctx, "family", "mario@ezwallet.com", []string{"luigi@ezwallet.com"})
		assert.ErrorIs(t, err, service.ErrAlreadyGrouped)
	})

	t.Run("nobody addable", func(t *testing.T) {
		svc, groups, users := newTestGroupService()
		groups.On("FindByName", ctx, "family").Return(nil, model.ErrNotFound)
		groups.On("GroupedEmails", ctx, []string{"mario@ezwallet.com"}).Return([]string{}, nil)
		users.On("FindByEmails", ctx, []string{"ghost@ezwallet.com"}).Return([]*model.User{}, nil)
		groups.On("GroupedEmails", ctx, []string{"ghost@ezwallet.com"}).Return([]string{}, nil)

		_, err := svc.CreateGroup(ctx, "family", "mario@ezwallet.com", []string{"ghost@ezwallet.com"})
		assert.ErrorIs(t, err, service.ErrNoMembersAdded)
		groups.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed member email", func(t *testing.T) {
		svc, _, _ := newTestGroupService()
		_, err := svc.CreateGroup(ctx, "family", "mario@ezwallet.com", []string{"luigi"})
		assert.ErrorIs(t, err, service.ErrInvalidEmail)
	})
}

func TestAddMembers(t *testing.T) {
	svc, groups, users := newTestGroupService()
	ctx := context.Background()

	emails := []string{"peach@ezwallet.com"}
	groups.On("FindByName", ctx, "family").Return(family("mario@ezwallet.com"), nil).Once()
	users.On("FindByEmails", ctx, emails).Return([]*model.User{{ID: "u3", Email: "peach@ezwallet.com"}}, nil)
	groups.On("GroupedEmails", ctx, emails).Return([]string{}, nil)
	groups.On("AddMembers", ctx, "family", []model.GroupMember{{Email: "peach@ezwallet.com", UserID: "u3"}}).Return(nil)
	groups.On("FindByName", ctx, "family").Return(family("mario@ezwallet.com", "peach@ezwallet.com"), nil).Once()

	change, err := svc.AddMembers(ctx, "family", emails)
	require.NoError(t, err)
	assert.Len(t, change.Group.Members, 2)
	assert.Empty(t, change.AlreadyInGroup)
}

func TestAddMembers_UnknownGroup(t *testing.T) {
	svc, groups, _ := newTestGroupService()
	ctx := context.Background()

	groups.On("FindByName", ctx, "ghosts").Return(nil, model.ErrNotFound)

	_, err := svc.AddMembers(ctx, "ghosts", []string{"peach@ezwallet.com"})
	assert.ErrorIs(t, err, service.ErrGroupNotFound)
}

func TestRemoveMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("removes members and reports the rest", func(t *testing.T) {
		svc, groups, users := newTestGroupService()
		emails := []string{"luigi@ezwallet.com", "peach@ezwallet.com", "ghost@ezwallet.com"}

		groups.On("FindByName", ctx, "family").Return(family("mario@ezwallet.com", "luigi@ezwallet.com"), nil).Once()
		users.On("FindByEmails", ctx, emails).Return([]*model.User{
			{Email: "luigi@ezwallet.com"}, {Email: "peach@ezwallet.com"},
		}, nil)
		groups.On("RemoveMembers", ctx, "family", []string{"luigi@ezwallet.com"}).Return(nil)
		groups.On("FindByName", ctx, "family").Return(family("mario@ezwallet.com"), nil).Once()

		change, err := svc.RemoveMembers(ctx, "family", emails)
		require.NoError(t, err)
		assert.Equal(t, []string{"peach@ezwallet.com"}, change.NotInGroup)
		assert.Equal(t, []string{"ghost@ezwallet.com"}, change.MembersNotFound)
		groups.AssertExpectations(t)
	})

	t.Run("first member survives", func(t *testing.T) {
		svc, groups, users := newTestGroupService()
		emails := []string{"mario@ezwallet.com", "luigi@ezwallet.com"}

		groups.On("FindByName", ctx, "family").Return(family("mario@ezwallet.com", "luigi@ezwallet.com"), nil).Once()
		users.On("FindByEmails", ctx, emails).Return([]*model.User{
			{Email: "mario@ezwallet.com"}, {Email: "luigi@ezwallet.com"},
		}, nil)
		groups.On("RemoveMembers", ctx, "family", []string{"luigi@ezwallet.com"}).Return(nil)
		groups.On("FindByName", ctx, "family").Return(family("mario@ezwallet.com"), nil).Once()

		_, err := svc.RemoveMembers(ctx, "family", emails)
		require.NoError(t, err)
		groups.AssertExpectations(t)
	})

	t.Run("single member group", func(t *testing.T) {
		svc, groups, _ := newTestGroupService()
		groups.On("FindByName", ctx, "family").Return(family("mario@ezwallet.com"), nil)

		_, err := svc.RemoveMembers(ctx, "family", []string{"mario@ezwallet.com"})
		assert.ErrorIs(t, err, service.ErrLastMember)
	})
}

func TestDeleteGroup(t *testing.T) {
	svc, groups, _ := newTestGroupService()
	ctx := context.Background()

	groups.On("Delete", ctx, "family").Return(nil)
	groups.On("Delete", ctx, "ghosts").Return(model.ErrNotFound)

	require.NoError(t, svc.DeleteGroup(ctx, "family"))
	assert.ErrorIs(t, svc.DeleteGroup(ctx, "ghosts"), service.ErrGroupNotFound)
}
