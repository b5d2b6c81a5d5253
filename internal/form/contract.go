package form

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nurpe/contracts-admin/internal/model"
)

type ContractForm struct {
	CustomerName   string `form:"customerName" label:"Customer name" validate:"required,min=2,max=100"`
	ContractNumber string `form:"contractNumber" label:"Contract number" validate:"required,max=50,contractnum"`
	WBSCode        string `form:"wbsCode" label:"WBS code" validate:"required,min=1,max=50"`
	ProjectName    string `form:"projectName" label:"Project name" validate:"required,min=3,max=200"`
	AreaID         int64  `form:"areaId" label:"Business area" validate:"gt=0"`
	ManagerID      int64  `form:"managerId" label:"Manager" validate:"gt=0"`
	StartDate      string `form:"startDate" label:"Start date" validate:"required,isodate"`
	EndDate        string `form:"endDate" label:"End date" validate:"required,isodate"`
	Status         string `form:"status" label:"Status" validate:"required,oneof=ACTIVE EXPIRED CANCELLED DRAFT"`
}

// NewContractForm pre-fills from c, or applies the create defaults when c
// is nil.
func NewContractForm(c *model.Contract) ContractForm {
	if c == nil {
		return ContractForm{Status: string(model.ContractStatusActive)}
	}
	return ContractForm{
		CustomerName:   c.CustomerName,
		ContractNumber: c.ContractNumber,
		WBSCode:        c.WBSCode,
		ProjectName:    c.ProjectName,
		AreaID:         c.AreaID,
		ManagerID:      c.ManagerID,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Status:         string(c.Status),
	}
}

func (f *ContractForm) Normalize() {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.ContractNumber = strings.TrimSpace(f.ContractNumber)
	f.WBSCode = strings.TrimSpace(f.WBSCode)
	f.ProjectName = strings.TrimSpace(f.ProjectName)
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.EndDate = strings.TrimSpace(f.EndDate)
}

func (f *ContractForm) Ok() (ValidationErrors, bool) {
	f.Normalize()
	return check(f)
}

func (f *ContractForm) Payload() model.ContractPayload {
	return model.ContractPayload{
		CustomerName:   f.CustomerName,
		ContractNumber: f.ContractNumber,
		WBSCode:        f.WBSCode,
		ProjectName:    f.ProjectName,
		StartDate:      f.StartDate,
		EndDate:        f.EndDate,
		Status:         model.ContractStatus(f.Status),
		AreaID:         f.AreaID,
		ManagerID:      f.ManagerID,
	}
}

// ISO dates compare correctly as strings once both have the right shape.
func contractDates(sl validator.StructLevel) {
	f := sl.Current().Interface().(ContractForm)
	if !isoDateRe.MatchString(f.StartDate) || !isoDateRe.MatchString(f.EndDate) {
		return
	}
	if f.EndDate < f.StartDate {
		sl.ReportError(f.EndDate, "endDate", "EndDate", "enddate", "")
	}
}
