package form

import (
	"context"
	"errors"
	"strings"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/resource"
)

// Form is implemented by every entity form.
type Form[P any] interface {
	Ok() (ValidationErrors, bool)
	Payload() P
}

// Editable is implemented by forms whose rules differ on update.
type Editable interface {
	SetEditing(editing bool)
}

// State is everything a form template needs.
type State struct {
	Entity      string
	Mode        resource.Mode
	ID          int64
	Values      any
	Errors      ValidationErrors
	Refs        Refs
	RefsLoading bool
	RefsError   error
	Failure     string
	Detail      string
}

// NewState starts a form for entity ("contract", "manager", ...). A non-zero
// id puts the form in update mode.
func NewState(entity string, id int64, values any) *State {
	mode := resource.Create
	if id != 0 {
		mode = resource.Update
	}
	return &State{Entity: entity, Mode: mode, ID: id, Values: values, Errors: ValidationErrors{}}
}

func (s *State) IsEdit() bool {
	return s.Mode == resource.Update
}

func (s *State) Title() string {
	if s.IsEdit() {
		return "Edit " + titleCase(s.Entity)
	}
	return "Create " + titleCase(s.Entity)
}

func (s *State) SubmitLabel() string {
	if s.IsEdit() {
		return "Update"
	}
	return "Create"
}

// Disabled reports whether selection controls and submit are unusable.
func (s *State) Disabled() bool {
	return s.RefsLoading || s.RefsError != nil
}

func (s *State) FailureMessage() string {
	return "Failed to " + s.Mode.String() + " " + s.Entity
}

func (s *State) HasErrors() bool {
	return len(s.Errors) > 0 || s.Failure != ""
}

// Submit validates f and, only when it is valid and the reference data is
// loaded, sends it through upsert. On success onSuccess runs before onClose.
// Any failure leaves the state populated for re-rendering the open dialog.
func Submit[P, E any](
	ctx context.Context,
	st *State,
	f Form[P],
	upsert func(context.Context, resource.UpsertRequest[P]) (*E, error),
	onSuccess func(*E),
	onClose func(),
) bool {
	st.Values = f
	st.Failure, st.Detail = "", ""

	if st.Disabled() {
		st.Failure = "Reference data is unavailable. Reload the form and try again."
		return false
	}
	errs, ok := f.Ok()
	st.Errors = errs
	if !ok {
		return false
	}

	req := resource.CreateRequest(f.Payload())
	if st.IsEdit() {
		req = resource.UpdateRequest(st.ID, f.Payload())
	}
	out, err := upsert(ctx, req)
	if err != nil {
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			st.Failure = st.FailureMessage()
			st.Detail = apiclient.MessageOf(err, "")
		}
		return false
	}

	if onSuccess != nil {
		onSuccess(out)
	}
	if onClose != nil {
		onClose()
	}
	return true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
