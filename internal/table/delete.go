package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/nurpe/contracts-admin/internal/apiclient"
)

type DeleteState int

const (
	DeleteIdle DeleteState = iota
	DeletePending
	DeleteInFlight
	DeleteFailed
)

func (s DeleteState) String() string {
	switch s {
	case DeletePending:
		return "pending"
	case DeleteInFlight:
		return "in-flight"
	case DeleteFailed:
		return "failed"
	default:
		return "idle"
	}
}

var ErrDeleteBusy = errors.New("another delete is already open")

// DeleteFlow is the confirmation dialog of one table. Only one row can be
// pending at a time.
type DeleteFlow struct {
	State    DeleteState
	TargetID int64
	Label    string
	Failure  string
	Detail   string
}

// Request opens the dialog for id.
func (d *DeleteFlow) Request(id int64, label string) error {
	switch d.State {
	case DeleteIdle:
	case DeletePending, DeleteFailed:
		if d.TargetID != id {
			return ErrDeleteBusy
		}
	default:
		return ErrDeleteBusy
	}
	d.State, d.TargetID, d.Label = DeletePending, id, label
	return nil
}

// Confirm runs del. On success the dialog closes; on failure it stays open
// with the error, so the row remains and the user can retry or cancel.
func (d *DeleteFlow) Confirm(ctx context.Context, entity string, del func(ctx context.Context, id int64) error) error {
	if d.State != DeletePending && d.State != DeleteFailed {
		return fmt.Errorf("confirm delete while %s", d.State)
	}
	d.State = DeleteInFlight
	d.Failure, d.Detail = "", ""

	if err := del(ctx, d.TargetID); err != nil {
		d.State = DeleteFailed
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			d.Failure = "Failed to delete " + entity
			d.Detail = apiclient.MessageOf(err, "")
		}
		return err
	}
	*d = DeleteFlow{}
	return nil
}

func (d *DeleteFlow) CanDismiss() bool {
	return d.State != DeleteInFlight
}

func (d *DeleteFlow) Open() bool {
	return d.State != DeleteIdle
}
