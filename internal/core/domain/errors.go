package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog      = errors.New("catalog is empty")
	ErrCatalogNotFound   = errors.New("catalog not found")
	ErrNothingEnriched   = errors.New("no enriched products to export")
	ErrRunInProgress     = errors.New("a batch run is already in progress")
	ErrMissingCredential = errors.New("text generation credential is not configured")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
