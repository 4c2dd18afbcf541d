package requestresponse

// CreateGroupRequest : body of POST /api/groups
type CreateGroupRequest struct {
	Name         string   `json:"name" example:"family"`
	MemberEmails []string `json:"memberEmails" example:"luigi@ezwallet.com,peach@ezwallet.com"`
}

// MembersRequest : body of the add, insert, remove and pull group routes
type MembersRequest struct {
	Emails []string `json:"emails" example:"luigi@ezwallet.com"`
}

// DeleteGroupRequest : body of DELETE /api/groups
type DeleteGroupRequest struct {
	Name string `json:"name" example:"family"`
}
