package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text      string    `gorm:"size:50;not null;index:idx_tag_text" json:"tag_text"`
	RoutineID uuid.UUID `gorm:"type:uuid;not null;index:idx_tag_routine" json:"routine_id"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ParseTagList splits a space separated tag list.
func ParseTagList(list string) []string {
	return strings.Fields(list)
}

// JoinTags renders tags back into the space separated form used by edit forms.
func JoinTags(tags []Tag) string {
	texts := make([]string, len(tags))
	for i, t := range tags {
		texts[i] = t.Text
	}
	return strings.Join(texts, " ")
}

// replaceTags swaps the routine's tag set for texts. Must run inside the
// caller's transaction so readers never see the empty intermediate set.
func replaceTags(tx *gorm.DB, routineID uuid.UUID, texts []string) ([]Tag, error) {
	if err := tx.Where("routine_id = ?", routineID).Delete(&Tag{}).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to clear tags")
	}
	return createTags(tx, routineID, texts)
}

func createTags(tx *gorm.DB, routineID uuid.UUID, texts []string) ([]Tag, error) {
	if len(texts) == 0 {
		return []Tag{}, nil
	}
	tags := make([]Tag, len(texts))
	for i, text := range texts {
		tags[i] = Tag{Text: text, RoutineID: routineID}
	}
	if err := tx.Create(&tags).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create tags")
	}
	return tags, nil
}
