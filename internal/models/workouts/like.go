package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

// Like records one user's endorsement of a routine. Routine.LikeCount
// mirrors the number of rows per routine.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_routine" json:"user_id"`
	RoutineID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_routine;index:idx_like_routine" json:"routine_id"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ToggleLike likes the routine for userID, or removes the like if one
// exists. Row and counter change together in one transaction; liked reports
// the state after the call.
func ToggleLike(ctx context.Context, cache Cache, db *gorm.DB, userID, routineID uuid.UUID) (routine *Routine, liked bool, err error) {
	if userID == uuid.Nil {
		return nil, false, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRoutine(tx, routineID); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND routine_id = ?", userID, routineID).Delete(&Like{})
		if res.Error != nil {
			return utils.WrapError(res.Error, utils.ErrInternalServerError.Code, "Failed to remove like")
		}

		if res.RowsAffected > 0 {
			if _, err := IncrementCounter(tx, &Routine{}, routineID, "like_count", -1); err != nil {
				return err
			}
			liked = false
		} else {
			if err := tx.Create(&Like{UserID: userID, RoutineID: routineID}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return utils.NewError(utils.ErrConflict.Code, "Like already recorded")
				}
				return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to add like")
			}
			if _, err := IncrementCounter(tx, &Routine{}, routineID, "like_count", 1); err != nil {
				return err
			}
			liked = true
		}

		routine, err = findRoutine(tx, routineID)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	invalidateListings(ctx, cache)
	return routine, liked, nil
}

// HasLiked reports whether userID currently likes the routine.
func HasLiked(ctx context.Context, db *gorm.DB, userID, routineID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	var count int64
	err := db.WithContext(ctx).Model(&Like{}).
		Where("user_id = ? AND routine_id = ?", userID, routineID).
		Count(&count).Error
	if err != nil {
		return false, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check like")
	}
	return count > 0, nil
}
