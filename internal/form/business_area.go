package form

import (
	"strings"

	"github.com/nurpe/contracts-admin/internal/model"
)

type BusinessAreaForm struct {
	Name        string `form:"name" label:"Name" validate:"required,min=2,max=100"`
	Description string `form:"description" label:"Description" validate:"required,min=5,max=500"`
}

func NewBusinessAreaForm(a *model.BusinessArea) BusinessAreaForm {
	if a == nil {
		return BusinessAreaForm{}
	}
	return BusinessAreaForm{Name: a.Name, Description: a.Description}
}

func (f *BusinessAreaForm) Ok() (ValidationErrors, bool) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	return check(f)
}

func (f *BusinessAreaForm) Payload() model.BusinessAreaPayload {
	return model.BusinessAreaPayload{Name: f.Name, Description: f.Description}
}
