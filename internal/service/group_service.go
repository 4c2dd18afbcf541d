package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
)

// GroupService manages groups. A user belongs to at most one group and a group is never
// left without members.
type GroupService struct {
	groups ports.GroupRepository
	users  ports.UserRepository
}

func NewGroupService(groups ports.GroupRepository, users ports.UserRepository) *GroupService {
	return &GroupService{groups: groups, users: users}
}

// candidates : emails split into addable members and the ones that must be skipped
type candidates struct {
	members         []model.GroupMember
	alreadyInGroup  []string
	membersNotFound []string
}

func (s *GroupService) sortCandidates(ctx context.Context, emails []string) (*candidates, error) {
	users, err := s.users.FindByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("[GroupService] resolving users: %w", err)
	}
	grouped, err := s.groups.GroupedEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("[GroupService] checking memberships: %w", err)
	}

	byEmail := make(map[string]*model.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	c := &candidates{alreadyInGroup: []string{}, membersNotFound: []string{}}
	for _, email := range emails {
		user, ok := byEmail[email]
		switch {
		case !ok:
			c.membersNotFound = append(c.membersNotFound, email)
		case slices.Contains(grouped, email):
			c.alreadyInGroup = append(c.alreadyInGroup, email)
		default:
			c.members = append(c.members, model.GroupMember{Email: user.Email, UserID: user.ID})
		}
	}
	return c, nil
}

func checkEmails(emails []string) error {
	if len(emails) == 0 || util.Blank(emails...) {
		return ErrMissingAttributes
	}
	for _, e := range emails {
		if !util.IsValidEmail(e) {
			return ErrInvalidEmail
		}
	}
	return nil
}

// CreateGroup : creatorEmail always joins the group. At least one of memberEmails besides the
// creator must be addable.
func (s *GroupService) CreateGroup(ctx context.Context, name, creatorEmail string, memberEmails []string) (*model.GroupChange, error) {
	if util.Blank(name) {
		return nil, ErrMissingAttributes
	}
	if err := checkEmails(memberEmails); err != nil {
		return nil, err
	}

	if _, err := s.groups.FindByName(ctx, name); err == nil {
		return nil, ErrGroupExists
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("[GroupService] looking up group: %w", err)
	}

	grouped, err := s.groups.GroupedEmails(ctx, []string{creatorEmail})
	if err != nil {
		return nil, fmt.Errorf("[GroupService] checking memberships: %w", err)
	}
	if len(grouped) > 0 {
		return nil, ErrAlreadyGrouped
	}

	emails := slices.DeleteFunc(slices.Clone(memberEmails), func(e string) bool { return e == creatorEmail })
	emails = uniqueEmails(emails)

	c, err := s.sortCandidates(ctx, emails)
	if err != nil {
		return nil, err
	}
	if len(c.members) == 0 {
		return nil, ErrNoMembersAdded
	}

	creator, err := s.users.FindByEmail(ctx, creatorEmail)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("[GroupService] looking up creator: %w", err)
	}
	members := append([]model.GroupMember{{Email: creator.Email, UserID: creator.ID}}, c.members...)

	if err := s.groups.Create(ctx, name, members); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, ErrGroupExists
		}
		return nil, fmt.Errorf("[GroupService] creating group: %w", err)
	}

	group, err := s.GetGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.GroupChange{
		Group:           group,
		AlreadyInGroup:  c.alreadyInGroup,
		MembersNotFound: c.membersNotFound,
	}, nil
}

func (s *GroupService) GetGroup(ctx context.Context, name string) (*model.Group, error) {
	group, err := s.groups.FindByName(ctx, name)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrGroupNotFound
	} else if err != nil {
		return nil, fmt.Errorf("[GroupService] looking up group: %w", err)
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("[GroupService] listing groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) AddMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error) {
	if err := checkEmails(emails); err != nil {
		return nil, err
	}
	if _, err := s.GetGroup(ctx, name); err != nil {
		return nil, err
	}

	c, err := s.sortCandidates(ctx, uniqueEmails(emails))
	if err != nil {
		return nil, err
	}
	if len(c.members) == 0 {
		return nil, ErrNoMembersAdded
	}

	if err := s.groups.AddMembers(ctx, name, c.members); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, ErrAlreadyGrouped
		}
		return nil, fmt.Errorf("[GroupService] adding members: %w", err)
	}

	group, err := s.GetGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.GroupChange{
		Group:           group,
		AlreadyInGroup:  c.alreadyInGroup,
		MembersNotFound: c.membersNotFound,
	}, nil
}

// RemoveMembers : when every member is named the first one stays
func (s *GroupService) RemoveMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error) {
	if err := checkEmails(emails); err != nil {
		return nil, err
	}
	group, err := s.GetGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(group.Members) <= 1 {
		return nil, ErrLastMember
	}

	emails = uniqueEmails(emails)
	users, err := s.users.FindByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("[GroupService] resolving users: %w", err)
	}
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u.Email] = true
	}

	current := group.MemberEmails()
	change := &model.GroupChange{NotInGroup: []string{}, MembersNotFound: []string{}}
	var remove []string
	for _, email := range emails {
		switch {
		case !known[email]:
			change.MembersNotFound = append(change.MembersNotFound, email)
		case !slices.Contains(current, email):
			change.NotInGroup = append(change.NotInGroup, email)
		default:
			remove = append(remove, email)
		}
	}
	if len(remove) == 0 {
		return nil, ErrNoMembersRemoved
	}
	if len(remove) == len(current) {
		remove = slices.DeleteFunc(remove, func(e string) bool { return e == current[0] })
	}

	if err := s.groups.RemoveMembers(ctx, name, remove); err != nil {
		return nil, fmt.Errorf("[GroupService] removing members: %w", err)
	}

	if change.Group, err = s.GetGroup(ctx, name); err != nil {
		return nil, err
	}
	return change, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, name string) error {
	if util.Blank(name) {
		return ErrMissingAttributes
	}
	if err := s.groups.Delete(ctx, name); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("[GroupService] deleting group: %w", err)
	}
	return nil
}

func uniqueEmails(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	unique := make([]string, 0, len(emails))
	for _, e := range emails {
		if !seen[e] {
			seen[e] = true
			unique = append(unique, e)
		}
	}
	return unique
}
