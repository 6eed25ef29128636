package services

import (
	"errors"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/repository"
	"github.com/princy-boutique/storefront/internal/utils"
)

// storeError maps repository sentinels onto apperr kinds. Errors that
// already carry a kind pass through unchanged.
func storeError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("Record already exists")
	case errors.Is(err, repository.ErrQuantityLimit):
		return errQuantityLimit
	}
	return apperr.Internal("Database error", err)
}

func validateRequest(req interface{}, message string) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperr.Invalid(message, err)
	}
	return nil
}
