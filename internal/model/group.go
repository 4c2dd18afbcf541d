package model

import "time"

type GroupMember struct {
	Email  string `db:"email" json:"email"`
	UserID string `db:"user_id" json:"user"`
}

type Group struct {
	Name      string        `db:"name" json:"name"`
	Members   []GroupMember `db:"-" json:"members"`
	CreatedAt time.Time     `db:"created_at" json:"-"`
}

// MemberEmails : emails of every member, used for Group authorization
func (g *Group) MemberEmails() []string {
	emails := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		emails = append(emails, m.Email)
	}
	return emails
}

// GroupChange : group after a membership change plus the emails that were skipped
type GroupChange struct {
	Group           *Group   `json:"group"`
	AlreadyInGroup  []string `json:"alreadyInGroup"`
	NotInGroup      []string `json:"notInGroup"`
	MembersNotFound []string `json:"membersNotFound"`
}
