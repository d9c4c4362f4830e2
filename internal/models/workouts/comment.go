package models

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	user "github.com/mnuddindev/routinely/internal/models/user"
	"github.com/mnuddindev/routinely/pkg/utils"
	"github.com/mnuddindev/routinely/pkg/validation"
	"gorm.io/gorm"
)

// Comment is append only: there is no edit or delete.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text        string    `gorm:"type:text;not null" json:"comment_text"`
	RoutineID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_routine" json:"routine_id"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_author" json:"created_by_id"`
	PublishedAt time.Time `gorm:"not null" json:"pub_date"`

	CreatedBy user.User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"created_by"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.PublishedAt.IsZero() {
		c.PublishedAt = time.Now()
	}
	return nil
}

// AddComment posts text on the routine as authorID.
func AddComment(ctx context.Context, db *gorm.DB, authorID, routineID uuid.UUID, text string) (*Comment, error) {
	if authorID == uuid.Nil {
		return nil, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}
	text = strings.TrimSpace(text)

	var comment *Comment
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRoutine(tx, routineID); err != nil {
			return err
		}
		if !validation.ValidContentInput(text) {
			return utils.FieldError("comment_text", "Please enter the details")
		}

		comment = &Comment{Text: text, RoutineID: routineID, CreatedByID: authorID}
		if err := tx.Omit("CreatedBy").Create(comment).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to add comment")
		}
		if err := tx.First(&comment.CreatedBy, "id = ?", authorID).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to load comment author")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the routine's comments, oldest first.
func ListComments(ctx context.Context, db *gorm.DB, routineID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	err := db.WithContext(ctx).
		Preload("CreatedBy").
		Where("routine_id = ?", routineID).
		Order("published_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to fetch comments")
	}
	return comments, nil
}
