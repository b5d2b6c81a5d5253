package model

const RoleAdmin = "ADMIN"

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	ManagerID int64  `json:"managerId"`
	Role      string `json:"role,omitempty"`
	RoleID    int64  `json:"roleId"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// UserPayload carries the password only when it is being set.
type UserPayload struct {
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	ManagerID int64  `json:"managerId"`
	RoleID    int64  `json:"roleId"`
	Verified  bool   `json:"verified"`
}

func (u User) Payload() UserPayload {
	return UserPayload{
		Username:  u.Username,
		ManagerID: u.ManagerID,
		RoleID:    u.RoleID,
		Verified:  u.Verified,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
