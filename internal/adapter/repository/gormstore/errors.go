package gormstore

import (
	"errors"

	"paylite-backend/internal/domain/apperr"

	"gorm.io/gorm"
)

// lookupErr maps a missing row to the aggregate's not-found sentinel and
// everything else to a storage error.
func lookupErr(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Storage(op, err)
}

func orderBySeq(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }
