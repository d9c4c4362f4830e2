package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	user "github.com/mnuddindev/routinely/internal/models/user"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

var formValidator = utils.NewValidator()

type Routine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:70;not null;index:idx_routine_title" json:"routine_title"`
	Text        string    `gorm:"type:text;not null" json:"routine_text"`
	LikeCount   int       `gorm:"not null;default:0;index:idx_routine_likes" json:"likes"`
	PublishedAt time.Time `gorm:"not null;index:idx_routine_published_at" json:"pub_date"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_routine_owner" json:"created_by_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Owner     user.User  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"created_by"`
	Tags      []Tag      `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"tags"`
	Exercises []Exercise `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// RoutineInput is the routine form shared by add, edit and customize.
type RoutineInput struct {
	Title   string `json:"routine_title" validate:"routine_title"`
	Text    string `json:"routine_text" validate:"content"`
	TagList string `json:"tag_list" validate:"tag_list"`
}

// Tags returns the individual tags of the form's tag list.
func (in RoutineInput) Tags() []string {
	return ParseTagList(in.TagList)
}

func (in RoutineInput) validate() error {
	if verr := formValidator.Validate(in); verr != nil {
		return utils.NewValidationError(verr)
	}
	return nil
}

func (r *Routine) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.PublishedAt.IsZero() {
		r.PublishedAt = time.Now()
	}
	return nil
}

// TagList renders the routine's tags the way the edit form expects them.
func (r *Routine) TagList() string {
	return JoinTags(r.Tags)
}

// Models lists every table owned by this package, in migration order.
func Models() []interface{} {
	return []interface{}{
		&Routine{},
		&Tag{},
		&Exercise{},
		&Like{},
		&Comment{},
		&JournalEntry{},
	}
}

// CreateRoutine stores a routine and its tags in one transaction.
func CreateRoutine(ctx context.Context, cache Cache, db *gorm.DB, ownerID uuid.UUID, in RoutineInput) (*Routine, error) {
	if ownerID == uuid.Nil {
		return nil, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := in.validate(); err != nil {
		return nil, err
	}

	var routine *Routine
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		routine, err = insertRoutine(tx, ownerID, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidateListings(ctx, cache)
	return routine, nil
}

func insertRoutine(tx *gorm.DB, ownerID uuid.UUID, in RoutineInput) (*Routine, error) {
	routine := &Routine{
		Title:   in.Title,
		Text:    in.Text,
		OwnerID: ownerID,
	}
	if err := tx.Omit("Owner", "Tags", "Exercises", "Comments").Create(routine).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create routine")
	}
	tags, err := createTags(tx, routine.ID, in.Tags())
	if err != nil {
		return nil, err
	}
	routine.Tags = tags
	return routine, nil
}

// GetRoutine loads a routine with its owner, tags, exercises and comments.
func GetRoutine(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Routine, error) {
	var routine Routine
	err := db.WithContext(ctx).
		Preload("Owner").
		Preload("Tags").
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("published_at asc")
		}).
		Preload("Comments.CreatedBy").
		First(&routine, "id = ?", id).Error
	if err != nil {
		return nil, routineLookupError(err)
	}
	return &routine, nil
}

func findRoutine(tx *gorm.DB, id uuid.UUID) (*Routine, error) {
	var routine Routine
	if err := tx.First(&routine, "id = ?", id).Error; err != nil {
		return nil, routineLookupError(err)
	}
	return &routine, nil
}

func routineLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewError(utils.ErrNotFound.Code, "Routine not found")
	}
	return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to fetch routine")
}

// EditRoutine replaces title, text and the whole tag set. Owner and like
// count are never touched.
func EditRoutine(ctx context.Context, cache Cache, db *gorm.DB, routineID, requesterID uuid.UUID, in RoutineInput) (*Routine, error) {
	if requesterID == uuid.Nil {
		return nil, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}
	in.Title = strings.TrimSpace(in.Title)

	var routine *Routine
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		routine, err = findRoutine(tx, routineID)
		if err != nil {
			return err
		}
		if routine.OwnerID != requesterID {
			return utils.NewError(utils.ErrForbidden.Code, "You're not the owner of this routine")
		}
		if err := in.validate(); err != nil {
			return err
		}

		if err := tx.Model(routine).Select("title", "text").Updates(map[string]interface{}{
			"title": in.Title,
			"text":  in.Text,
		}).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to update routine")
		}

		tags, err := replaceTags(tx, routine.ID, in.Tags())
		if err != nil {
			return err
		}
		routine.Title, routine.Text, routine.Tags = in.Title, in.Text, tags
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateListings(ctx, cache)
	return routine, nil
}

// DeleteRoutine removes a routine owned by requesterID together with its
// comments, likes, tags, exercises and journal entries.
func DeleteRoutine(ctx context.Context, cache Cache, db *gorm.DB, routineID, requesterID uuid.UUID) error {
	if requesterID == uuid.Nil {
		return utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		routine, err := findRoutine(tx, routineID)
		if err != nil {
			return err
		}
		if routine.OwnerID != requesterID {
			return utils.NewError(utils.ErrForbidden.Code, "You aren't the creator of this routine")
		}

		for _, dependent := range []interface{}{&Comment{}, &Like{}, &Tag{}, &Exercise{}, &JournalEntry{}} {
			if err := tx.Where("routine_id = ?", routine.ID).Delete(dependent).Error; err != nil {
				return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete routine dependents")
			}
		}
		if err := tx.Delete(routine).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete routine")
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateListings(ctx, cache)
	return nil
}

// CustomizeRoutine copies an existing routine into a new one owned by
// requesterID, using the edited form values, and plans it in the
// requester's journal.
func CustomizeRoutine(ctx context.Context, cache Cache, db *gorm.DB, sourceID, requesterID uuid.UUID, in RoutineInput) (*Routine, *JournalEntry, error) {
	if requesterID == uuid.Nil {
		return nil, nil, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first")
	}
	in.Title = strings.TrimSpace(in.Title)

	var (
		routine *Routine
		entry   *JournalEntry
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRoutine(tx, sourceID); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}

		var err error
		routine, err = insertRoutine(tx, requesterID, in)
		if err != nil {
			return err
		}

		entry = &JournalEntry{UserID: requesterID, RoutineID: routine.ID}
		if err := tx.Omit("Routine").Create(entry).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to add routine to journal")
		}
		entry.Routine = *routine
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	invalidateListings(ctx, cache)
	return routine, entry, nil
}

// ListRoutinesByLikes returns up to limit routines starting at offset, most
// liked first. Pages are cached until the next write that affects ordering.
func ListRoutinesByLikes(ctx context.Context, cache Cache, db *gorm.DB, offset, limit int) ([]Routine, error) {
	if offset < 0 {
		offset = 0
	}

	var key string
	if cache != nil {
		key = listingKey(cache.Generation(ctx, listingGenerationKey), offset, limit)
		var cached []Routine
		if cache.Fetch(ctx, key, &cached) {
			return cached, nil
		}
	}

	var routines []Routine
	err := db.WithContext(ctx).
		Preload("Owner").
		Preload("Tags").
		Order("like_count desc").
		Order("published_at desc").
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&routines).Error
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to fetch routines")
	}

	if cache != nil {
		cache.Store(ctx, key, routines, listingTTL)
	}
	return routines, nil
}

// ListRoutinesByRecency returns the most recently published routines.
func ListRoutinesByRecency(ctx context.Context, db *gorm.DB, limit int) ([]Routine, error) {
	var routines []Routine
	err := db.WithContext(ctx).
		Preload("Owner").
		Preload("Tags").
		Order("published_at desc").
		Order("id asc").
		Limit(limit).
		Find(&routines).Error
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to fetch routines")
	}
	return routines, nil
}

// CountRoutines returns the number of stored routines.
func CountRoutines(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&Routine{}).Count(&count).Error; err != nil {
		return 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count routines")
	}
	return count, nil
}
