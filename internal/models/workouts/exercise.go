package models

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

type Exercise struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text        string    `gorm:"type:text;not null" json:"exercise_text"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	RoutineID   uuid.UUID `gorm:"type:uuid;not null;index:idx_exercise_routine" json:"routine_id"`
	PublishedAt time.Time `gorm:"not null" json:"pub_date"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.PublishedAt.IsZero() {
		e.PublishedAt = time.Now()
	}
	return nil
}

// ParseExercises splits raw form input into one entry per line. Carriage
// returns are dropped and blank lines skipped; the text itself is kept as typed.
func ParseExercises(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// AddExercises appends one exercise per line of raw to the routine, after
// any exercises it already has.
func AddExercises(ctx context.Context, db *gorm.DB, routineID uuid.UUID, raw string) ([]Exercise, error) {
	texts := ParseExercises(raw)
	if len(texts) == 0 {
		return nil, utils.FieldError("exercise_text", "You didn't enter a name")
	}

	var exercises []Exercise
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRoutine(tx, routineID); err != nil {
			return err
		}

		var last int64
		if err := tx.Model(&Exercise{}).Where("routine_id = ?", routineID).Count(&last).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count exercises")
		}

		now := time.Now()
		exercises = make([]Exercise, len(texts))
		for i, text := range texts {
			exercises[i] = Exercise{
				Text:        text,
				Position:    int(last) + i,
				RoutineID:   routineID,
				PublishedAt: now,
			}
		}
		if err := tx.Create(&exercises).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create exercises")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exercises, nil
}
