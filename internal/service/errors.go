package service

import "errors"

// Business rule violations. Handlers report their text verbatim with a 400.
var (
	ErrMissingAttributes = errors.New("missing or empty attributes")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrAlreadyRegistered = errors.New("you are already registered")
	ErrNeedRegister      = errors.New("please you need to register")
	ErrWrongCredentials  = errors.New("wrong credentials")
	ErrLoggedOut         = errors.New("user has logged out")
	ErrUserNotFound      = errors.New("user not found")
	ErrAdminDeletion     = errors.New("admins cannot be deleted")

	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLastCategory     = errors.New("the last category cannot be deleted")
	ErrInvalidAmount    = errors.New("amount must be a number")

	ErrTransactionNotFound = errors.New("transaction not found")

	ErrGroupExists      = errors.New("group already exists")
	ErrGroupNotFound    = errors.New("group not found")
	ErrAlreadyGrouped   = errors.New("user is already in a group")
	ErrNoMembersAdded   = errors.New("none of the members can be added")
	ErrNoMembersRemoved = errors.New("none of the members can be removed")
	ErrLastMember       = errors.New("a group must keep at least one member")
)
