package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nurpe/contracts-admin/internal/apiclient"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

// translate classifies a backend failure while keeping the original
// *apiclient.Error (and its server message) reachable through errors.As.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch apiclient.StatusOf(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
