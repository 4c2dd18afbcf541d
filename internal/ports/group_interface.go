package ports

import (
	"context"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
)

type GroupRepository interface {
	Create(ctx context.Context, name string, members []model.GroupMember) error
	FindByName(ctx context.Context, name string) (*model.Group, error)
	List(ctx context.Context) ([]*model.Group, error)
	GroupedEmails(ctx context.Context, emails []string) ([]string, error)
	AddMembers(ctx context.Context, name string, members []model.GroupMember) error
	RemoveMembers(ctx context.Context, name string, emails []string) error
	Delete(ctx context.Context, name string) error
}

type GroupService interface {
	CreateGroup(ctx context.Context, name, creatorEmail string, memberEmails []string) (*model.GroupChange, error)
	GetGroup(ctx context.Context, name string) (*model.Group, error)
	ListGroups(ctx context.Context) ([]*model.Group, error)
	AddMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error)
	RemoveMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error)
	DeleteGroup(ctx context.Context, name string) error
}
