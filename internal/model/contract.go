package model

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusExpired   ContractStatus = "EXPIRED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
	ContractStatusDraft     ContractStatus = "DRAFT"
)

// ContractStatuses lists the statuses a contract form may submit.
var ContractStatuses = []ContractStatus{
	ContractStatusActive,
	ContractStatusExpired,
	ContractStatusCancelled,
	ContractStatusDraft,
}

// Contract mirrors the backend contract DTO. Dates stay in their wire
// form (YYYY-MM-DD) so an unmodified record round-trips byte for byte.
type Contract struct {
	ID             int64          `json:"id"`
	CustomerName   string         `json:"customerName"`
	ContractNumber string         `json:"contractNumber"`
	WBSCode        string         `json:"wbsCode"`
	ProjectName    string         `json:"projectName"`
	AreaID         int64          `json:"areaId"`
	ManagerID      int64          `json:"managerId"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	Status         ContractStatus `json:"status"`
	CreatedAt      string         `json:"createdAt,omitempty"`
	Manager        *Manager       `json:"manager,omitempty"`
	Area           *BusinessArea  `json:"area,omitempty"`
}

type ContractPayload struct {
	CustomerName   string         `json:"customerName"`
	ContractNumber string         `json:"contractNumber"`
	WBSCode        string         `json:"wbsCode"`
	ProjectName    string         `json:"projectName"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	Status         ContractStatus `json:"status"`
	AreaID         int64          `json:"areaId"`
	ManagerID      int64          `json:"managerId"`
}

// Payload strips server-owned fields.
func (c Contract) Payload() ContractPayload {
	return ContractPayload{
		CustomerName:   c.CustomerName,
		ContractNumber: c.ContractNumber,
		WBSCode:        c.WBSCode,
		ProjectName:    c.ProjectName,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Status:         c.Status,
		AreaID:         c.AreaID,
		ManagerID:      c.ManagerID,
	}
}

type ContractHistory struct {
	ID             int64  `json:"id"`
	ContractID     int64  `json:"contractId"`
	ModifiedByID   int64  `json:"modifiedById"`
	ModifiedAt     string `json:"modifiedAt"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

type ContractStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Expiring int64 `json:"expiring"`
	Expired  int64 `json:"expired"`
}

type AreaCount struct {
	AreaName string `json:"areaName"`
	Count    int64  `json:"count"`
}

type TimelinePoint struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type ManagerCount struct {
	ManagerName    string `json:"managerName"`
	ContractsCount int64  `json:"contractsCount"`
}
