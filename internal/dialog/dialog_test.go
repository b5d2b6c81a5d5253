package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-admin/internal/model"
)

func TestEditThenCreateDoesNotLeakEntity(t *testing.T) {
	var s State[model.Manager]
	assert.False(t, s.Open)

	s.OpenEdit(model.Manager{ID: 3, FirstName: "Ann"})
	require.True(t, s.IsEdit())
	assert.Equal(t, int64(3), s.Entity.ID)

	s.Close()
	assert.Equal(t, State[model.Manager]{}, s)

	s.OpenCreate()
	assert.True(t, s.Open)
	assert.Nil(t, s.Entity)
	assert.False(t, s.IsEdit())
}

func TestOpenEditCopiesEntity(t *testing.T) {
	row := model.BusinessArea{ID: 1, Name: "North"}
	var s State[model.BusinessArea]
	s.OpenEdit(row)
	row.Name = "changed"
	assert.Equal(t, "North", s.Entity.Name)
}

func TestCloseURL(t *testing.T) {
	p := Page[model.User]{ReturnTo: "/users?filter=VERIFIED&page=1"}
	p.Dialog.OpenEdit(model.User{ID: 5})

	assert.Equal(t, "/users?filter=VERIFIED&page=1", p.CloseURL())
	assert.False(t, p.Dialog.Open)
	assert.Nil(t, p.Dialog.Entity)
}
