package response

import (
	"stempede-store/internal/data/entity"
)

type LoginResponse struct {
	Roles []string `json:"roles"`
}

type UserProfileResponse struct {
	UserID   int      `json:"user_id"`
	FullName string   `json:"full_name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Address  string   `json:"address,omitempty"`
	Status   string   `json:"status"`
	Roles    []string `json:"roles"`
}

// Helper converters
func UserToProfile(user *entity.User, roles []string) UserProfileResponse {
	status := "Banned"
	if user.Status {
		status = "Active"
	}
	if roles == nil {
		roles = []string{}
	}

	return UserProfileResponse{
		UserID:   user.ID,
		FullName: user.FullName,
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Address:  user.Address,
		Status:   status,
		Roles:    roles,
	}
}
