// Package service holds the business rules of the catalog. Methods return
// *apperr.Error values that the HTTP layer maps to status codes.
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/logging"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// storeError maps a storage error to NotFound(msg) or a logged Internal error.
func storeError(ctx context.Context, op string, err error, notFoundMsg string) error {
	if notFoundMsg != "" && isNotFound(err) {
		return apperr.NotFound(notFoundMsg)
	}
	logging.FromContext(ctx).Error("store_error", "op", op, "error", err)
	return apperr.Internal(err)
}
