package form

import (
	"strings"

	"github.com/nurpe/contracts-admin/internal/model"
)

type ManagerForm struct {
	FirstName   string `form:"firstName" label:"First name" validate:"required,min=2,max=50"`
	LastName    string `form:"lastName" label:"Last name" validate:"required,min=2,max=50"`
	Email       string `form:"email" label:"Email" validate:"required,max=100,emailaddr"`
	PhoneNumber string `form:"phoneNumber" label:"Phone number" validate:"required,min=7,max=20,phone"`
	Department  string `form:"department" label:"Department" validate:"required,min=2,max=100"`
}

func NewManagerForm(m *model.Manager) ManagerForm {
	if m == nil {
		return ManagerForm{}
	}
	return ManagerForm{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Department:  m.Department,
	}
}

func (f *ManagerForm) Ok() (ValidationErrors, bool) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.Department = strings.TrimSpace(f.Department)
	return check(f)
}

func (f *ManagerForm) Payload() model.ManagerPayload {
	return model.ManagerPayload{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
		Department:  f.Department,
	}
}
