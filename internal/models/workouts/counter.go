package models

import (
	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

// IncrementCounter adds delta to an integer column in a single UPDATE so
// concurrent writers never lose updates. Decrements never take the column
// below zero; updated is false when no row matched.
func IncrementCounter(tx *gorm.DB, model interface{}, id uuid.UUID, column string, delta int) (updated bool, err error) {
	q := tx.Model(model).Where("id = ?", id)
	if delta < 0 {
		q = q.Where(column+" >= ?", -delta)
	}
	res := q.UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return false, utils.WrapError(res.Error, utils.ErrInternalServerError.Code, "Failed to update "+column)
	}
	return res.RowsAffected > 0, nil
}
