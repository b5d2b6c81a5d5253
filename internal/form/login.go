package form

import "strings"

type LoginForm struct {
	Username string `form:"username" label:"Username" validate:"required"`
	Password string `form:"password" label:"Password" validate:"required"`
}

func (f *LoginForm) Ok() (ValidationErrors, bool) {
	f.Username = strings.TrimSpace(f.Username)
	return check(f)
}
