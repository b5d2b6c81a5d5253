package form

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nurpe/contracts-admin/internal/model"
)

// UserForm requires a password on create only; an empty password on update
// keeps the current one.
type UserForm struct {
	Username  string `form:"username" label:"Username" validate:"required,min=3,max=50,username"`
	Password  string `form:"password" label:"Password" validate:"omitempty,min=8,max=100"`
	ManagerID int64  `form:"managerId" label:"Manager" validate:"gt=0"`
	RoleID    int64  `form:"roleId" label:"Role" validate:"gt=0"`
	Verified  bool   `form:"verified" label:"Verified"`

	Editing bool `form:"-"`
}

func NewUserForm(u *model.User) UserForm {
	if u == nil {
		return UserForm{}
	}
	return UserForm{
		Username:  u.Username,
		ManagerID: u.ManagerID,
		RoleID:    u.RoleID,
		Verified:  u.Verified,
		Editing:   true,
	}
}

func (f *UserForm) SetEditing(editing bool) {
	f.Editing = editing
}

func (f *UserForm) Ok() (ValidationErrors, bool) {
	f.Username = strings.TrimSpace(f.Username)
	return check(f)
}

func (f *UserForm) Payload() model.UserPayload {
	return model.UserPayload{
		Username:  f.Username,
		Password:  f.Password,
		ManagerID: f.ManagerID,
		RoleID:    f.RoleID,
		Verified:  f.Verified,
	}
}

func userPassword(sl validator.StructLevel) {
	f := sl.Current().Interface().(UserForm)
	if !f.Editing && f.Password == "" {
		sl.ReportError(f.Password, "password", "Password", "required", "")
	}
}
