package requestresponse

import "github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"

// UserData : public view of a user
type UserData struct {
	Username string `json:"username" example:"mario"`
	Email    string `json:"email" example:"mario@ezwallet.com"`
	Role     string `json:"role" example:"Regular"`
}

func UserDataFromModel(user *model.User) UserData {
	return UserData{Username: user.Username, Email: user.Email, Role: user.Role}
}

// DeleteUserRequest : body of DELETE /api/users
type DeleteUserRequest struct {
	Email string `json:"email" example:"mario@ezwallet.com"`
}
