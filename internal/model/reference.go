package model

import (
	"encoding/json"
	"strings"
)

type BusinessArea struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BusinessAreaPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a BusinessArea) Payload() BusinessAreaPayload {
	return BusinessAreaPayload{Name: a.Name, Description: a.Description}
}

type Manager struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Department  string `json:"department"`
}

func (m Manager) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

type ManagerPayload struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Department  string `json:"department"`
}

func (m Manager) Payload() ManagerPayload {
	return ManagerPayload{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Department:  m.Department,
	}
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both {"name": ...} and the older {"role": ...} shape.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Name = raw.Name
	if r.Name == "" {
		r.Name = raw.Role
	}
	return nil
}

type FinancialType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FinancialTypes is the fixed catalogue the backend seeds.
var FinancialTypes = []FinancialType{
	{ID: 1, Name: "Revenue"},
	{ID: 2, Name: "Cost"},
	{ID: 3, Name: "Profit"},
}

func FinancialTypeName(id int64) string {
	for _, t := range FinancialTypes {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}
