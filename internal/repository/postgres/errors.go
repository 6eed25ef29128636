package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/princy-boutique/storefront/internal/repository"
)

// translate maps gorm errors onto the repository sentinels. It relies on
// the connection being opened with TranslateError.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repository.ErrNotFound
	}
	return err
}
