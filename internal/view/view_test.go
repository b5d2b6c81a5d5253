package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-admin/internal/model"
)

func TestBadge(t *testing.T) {
	assert.Equal(t, "success", Badge(model.ContractStatusActive))
	assert.Equal(t, "destructive", Badge(model.ContractStatusExpired))
	assert.Equal(t, "secondary", Badge(model.ContractStatusCancelled))
	assert.Equal(t, "default", Badge(model.ContractStatusDraft))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "3 / 10 contracts", Counter(3, 10, "contracts"))
	assert.Equal(t, "March", MonthName(3))
	assert.Empty(t, MonthName(13))
	assert.Equal(t, "2024-01-31", FormatDate("2024-01-31T10:00:00Z"))
	assert.Equal(t, "soon", FormatDate("soon"))
	assert.Equal(t, int64(25), Percent(1, 4))
	assert.Equal(t, int64(0), Percent(1, 0))
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"login", "dashboard", "contracts", "contract_detail", "business_areas", "managers", "users", "financial_values", "error"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "error", Page{
		Title: "Not found",
		Data:  ErrorData{Status: 404, Message: "Contract not found"},
	}))
	assert.Contains(t, buf.String(), "Contract not found")
}
