package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

// JournalEntry places a routine in a user's journal. An entry is planned
// while CompletedCount is zero and completed afterwards. A user holds at most
// one entry per routine, enforced by idx_journal_user_routine as well as by
// AddToJournal.
type JournalEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_journal_user_routine" json:"user_id"`
	RoutineID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_journal_user_routine;index:idx_journal_routine" json:"routine_id"`
	CompletedCount int        `gorm:"not null;default:0" json:"completed_count"`
	CompletedOn    *time.Time `json:"completed_on"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Routine Routine `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"routine"`
}

func (j *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Completed reports whether the routine was finished at least once.
func (j *JournalEntry) Completed() bool {
	return j.CompletedCount > 0
}

// Journal is a user's entries split by completion.
type Journal struct {
	Planned   []JournalEntry `json:"planned"`
	Completed []JournalEntry `json:"completed"`
}

// AddToJournal plans routineID for userID.
func AddToJournal(ctx context.Context, db *gorm.DB, userID, routineID uuid.UUID) (*JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}

	var entry *JournalEntry
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		routine, err := findRoutine(tx, routineID)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&JournalEntry{}).
			Where("user_id = ? AND routine_id = ?", userID, routineID).
			Count(&existing).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check journal")
		}
		if existing > 0 {
			return utils.NewError(utils.ErrConflict.Code, "Routine is already in your journal")
		}

		entry = &JournalEntry{UserID: userID, RoutineID: routineID}
		if err := tx.Omit("Routine").Create(entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.NewError(utils.ErrConflict.Code, "Routine is already in your journal")
			}
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to add routine to journal")
		}
		entry.Routine = *routine
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func findOwnedEntry(tx *gorm.DB, userID, entryID uuid.UUID) (*JournalEntry, error) {
	var entry JournalEntry
	if err := tx.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewError(utils.ErrNotFound.Code, "Journal entry not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to fetch journal entry")
	}
	if entry.UserID != userID {
		return nil, utils.NewError(utils.ErrForbidden.Code, "This journal entry belongs to another user")
	}
	return &entry, nil
}

// MarkComplete records one more completion of the entry and stamps the time.
func MarkComplete(ctx context.Context, db *gorm.DB, userID, entryID uuid.UUID) (*JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}

	var entry *JournalEntry
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedEntry(tx, userID, entryID); err != nil {
			return err
		}
		if _, err := IncrementCounter(tx, &JournalEntry{}, entryID, "completed_count", 1); err != nil {
			return err
		}
		if err := tx.Model(&JournalEntry{}).Where("id = ?", entryID).
			UpdateColumn("completed_on", time.Now()).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to stamp completion")
		}

		var reloaded JournalEntry
		if err := tx.Preload("Routine").First(&reloaded, "id = ?", entryID).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to reload journal entry")
		}
		entry = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveJournalEntry deletes an entry owned by userID.
func RemoveJournalEntry(ctx context.Context, db *gorm.DB, userID, entryID uuid.UUID) error {
	if userID == uuid.Nil {
		return utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := findOwnedEntry(tx, userID, entryID)
		if err != nil {
			return err
		}
		if err := tx.Delete(entry).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to remove journal entry")
		}
		return nil
	})
}

// ListJournal returns every entry of userID split into planned and completed.
func ListJournal(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*Journal, error) {
	var entries []JournalEntry
	err := db.WithContext(ctx).
		Preload("Routine").
		Preload("Routine.Tags").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to fetch journal")
	}

	journal := &Journal{Planned: []JournalEntry{}, Completed: []JournalEntry{}}
	for _, e := range entries {
		if e.Completed() {
			journal.Completed = append(journal.Completed, e)
		} else {
			journal.Planned = append(journal.Planned, e)
		}
	}
	return journal, nil
}
