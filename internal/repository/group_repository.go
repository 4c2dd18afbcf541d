package repository

import (
	"context"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type GroupRepository struct {
	*config.Database
}

func NewGroupRepository(database *config.Database) *GroupRepository {
	return &GroupRepository{database}
}

// Create : inserts the group and its members atomically
func (r *GroupRepository) Create(ctx context.Context, name string, members []model.GroupMember) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[GroupRepo] failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO groups (name) VALUES ($1)`, name); err != nil {
		return translate(util.LogError("[GroupRepo] failed to insert group", err))
	}
	if err := insertMembers(ctx, tx, name, members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[GroupRepo] failed to commit", err)
	}
	return nil
}

func insertMembers(ctx context.Context, tx *sqlx.Tx, name string, members []model.GroupMember) error {
	for _, m := range members {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (group_name, email, user_id) VALUES ($1, $2, $3)`,
			name, m.Email, m.UserID)
		if err != nil {
			return translate(util.LogError("[GroupRepo] failed to insert member", err))
		}
	}
	return nil
}

func (r *GroupRepository) FindByName(ctx context.Context, name string) (*model.Group, error) {
	var group model.Group
	if err := r.DB.GetContext(ctx, &group, `SELECT name, created_at FROM groups WHERE name = $1`, name); err != nil {
		return nil, translate(err)
	}

	group.Members = []model.GroupMember{}
	query := `SELECT email, user_id FROM group_members WHERE group_name = $1 ORDER BY email`
	if err := r.DB.SelectContext(ctx, &group.Members, query, name); err != nil {
		return nil, util.LogError("[GroupRepo] failed to load members", err)
	}
	return &group, nil
}

func (r *GroupRepository) List(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	if err := r.DB.SelectContext(ctx, &groups, `SELECT name, created_at FROM groups ORDER BY created_at, name`); err != nil {
		return nil, util.LogError("[GroupRepo] failed to list groups", err)
	}

	var rows []struct {
		GroupName string `db:"group_name"`
		model.GroupMember
	}
	if err := r.DB.SelectContext(ctx, &rows, `SELECT group_name, email, user_id FROM group_members ORDER BY email`); err != nil {
		return nil, util.LogError("[GroupRepo] failed to list members", err)
	}

	byName := make(map[string]*model.Group, len(groups))
	for _, g := range groups {
		g.Members = []model.GroupMember{}
		byName[g.Name] = g
	}
	for _, row := range rows {
		if g, ok := byName[row.GroupName]; ok {
			g.Members = append(g.Members, row.GroupMember)
		}
	}
	return groups, nil
}

// GroupedEmails : those emails that already belong to some group
func (r *GroupRepository) GroupedEmails(ctx context.Context, emails []string) ([]string, error) {
	grouped := []string{}
	query := `SELECT email FROM group_members WHERE email = ANY($1)`
	if err := r.DB.SelectContext(ctx, &grouped, query, pq.Array(emails)); err != nil {
		return nil, util.LogError("[GroupRepo] failed to check memberships", err)
	}
	return grouped, nil
}

func (r *GroupRepository) AddMembers(ctx context.Context, name string, members []model.GroupMember) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[GroupRepo] failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := insertMembers(ctx, tx, name, members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[GroupRepo] failed to commit", err)
	}
	return nil
}

func (r *GroupRepository) RemoveMembers(ctx context.Context, name string, emails []string) error {
	query := `DELETE FROM group_members WHERE group_name = $1 AND email = ANY($2)`
	if _, err := r.DB.ExecContext(ctx, query, name, pq.Array(emails)); err != nil {
		return util.LogError("[GroupRepo] failed to remove members", err)
	}
	return nil
}

// Delete : members go with the group through the cascade
func (r *GroupRepository) Delete(ctx context.Context, name string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM groups WHERE name = $1`, name)
	if err != nil {
		return util.LogError("[GroupRepo] failed to delete group", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return model.ErrNotFound
	}
	return nil
}
