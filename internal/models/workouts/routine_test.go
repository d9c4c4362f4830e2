package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoutineWithTags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "alice")

	created := newRoutine(t, db, owner, "5x5", "strength barbell")

	got, err := GetRoutine(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "5x5", got.Title)
	assert.Equal(t, owner, got.OwnerID)
	assert.Equal(t, "alice", got.Owner.Username)
	assert.Zero(t, got.LikeCount)
	assert.ElementsMatch(t, []string{"strength", "barbell"}, tagTexts(got.Tags))
	assert.ElementsMatch(t, []string{"strength", "barbell"}, ParseTagList(got.TagList()))
}

func TestCreateRoutineRequiresLogin(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateRoutine(context.Background(), nil, db, uuid.Nil, RoutineInput{Title: "5x5", Text: "x", TagList: "strength"})
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))
}

func TestCreateRoutineValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "alice")

	_, err := CreateRoutine(ctx, nil, db, owner, RoutineInput{
		Title:   "Leg day!!",
		Text:    "   ",
		TagList: "ab legs",
	})
	require.True(t, errors.Is(err, utils.ErrBadRequest))

	var appErr *utils.CustomError
	require.True(t, utils.As(err, &appErr))
	for _, field := range []string{"routine_title", "routine_text", "tag_list"} {
		_, ok := appErr.Field(field)
		assert.True(t, ok, "expected error on %s", field)
	}

	count, err := CountRoutines(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing may be stored on validation failure")
}

func TestEditRoutineReplacesTags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "alice")
	r := newRoutine(t, db, owner, "5x5", "strength barbell")

	_, err := EditRoutine(ctx, nil, db, r.ID, owner, RoutineInput{
		Title:   "Five by five",
		Text:    "Add deadlifts on Friday.",
		TagList: "power lifting",
	})
	require.NoError(t, err)

	got, err := GetRoutine(ctx, db, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Five by five", got.Title)
	assert.Equal(t, "Add deadlifts on Friday.", got.Text)
	assert.Equal(t, owner, got.OwnerID)
	assert.ElementsMatch(t, []string{"power", "lifting"}, tagTexts(got.Tags))

	var tagRows int64
	require.NoError(t, db.Model(&Tag{}).Where("routine_id = ?", r.ID).Count(&tagRows).Error)
	assert.EqualValues(t, 2, tagRows)
}

func TestEditRoutineErrors(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := newUser(t, db, "alice")
	other := newUser(t, db, "bob")
	r := newRoutine(t, db, owner, "5x5", "strength")
	valid := RoutineInput{Title: "Changed", Text: "changed", TagList: "changed"}

	_, err := EditRoutine(ctx, nil, db, r.ID, uuid.Nil, valid)
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))

	_, err = EditRoutine(ctx, nil, db, uuid.New(), owner, valid)
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = EditRoutine(ctx, nil, db, r.ID, other, valid)
	assert.True(t, errors.Is(err, utils.ErrForbidden))

	_, err = EditRoutine(ctx, nil, db, r.ID, owner, RoutineInput{Title: "", Text: "x", TagList: "changed"})
	assert.True(t, errors.Is(err, utils.ErrBadRequest))

	got, err := GetRoutine(ctx, db, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "5x5", got.Title, "failed edits must leave the routine untouched")
	assert.ElementsMatch(t, []string{"strength"}, tagTexts(got.Tags))
}

func TestDeleteRoutineCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	r := newRoutine(t, db, alice, "5x5", "strength barbell")

	_, err := AddExercises(ctx, db, r.ID, "Squat\r\nBench")
	require.NoError(t, err)
	_, _, err = ToggleLike(ctx, nil, db, bob, r.ID)
	require.NoError(t, err)
	_, err = AddComment(ctx, db, bob, r.ID, "Great routine")
	require.NoError(t, err)
	_, err = AddToJournal(ctx, db, bob, r.ID)
	require.NoError(t, err)

	err = DeleteRoutine(ctx, nil, db, r.ID, bob)
	assert.True(t, errors.Is(err, utils.ErrForbidden))

	require.NoError(t, DeleteRoutine(ctx, nil, db, r.ID, alice))

	_, err = GetRoutine(ctx, db, r.ID)
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	for _, model := range []interface{}{&Tag{}, &Exercise{}, &Like{}, &Comment{}, &JournalEntry{}} {
		var n int64
		require.NoError(t, db.Model(model).Where("routine_id = ?", r.ID).Count(&n).Error)
		assert.Zero(t, n, "%T rows must be removed with the routine", model)
	}

	err = DeleteRoutine(ctx, nil, db, r.ID, alice)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestLikeScenario(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := newUser(t, db, "user_a")
	b := newUser(t, db, "user_b")

	r := newRoutine(t, db, a, "5x5", "strength barbell")

	liked, isLiked, err := ToggleLike(ctx, nil, db, b, r.ID)
	require.NoError(t, err)
	assert.True(t, isLiked)
	assert.Equal(t, 1, liked.LikeCount)

	unliked, isLiked, err := ToggleLike(ctx, nil, db, b, r.ID)
	require.NoError(t, err)
	assert.False(t, isLiked)
	assert.Equal(t, 0, unliked.LikeCount)

	require.NoError(t, DeleteRoutine(ctx, nil, db, r.ID, a))
	_, err = GetRoutine(ctx, db, r.ID)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestCustomizeRoutine(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	source := newRoutine(t, db, alice, "5x5", "strength barbell")

	copyOf, entry, err := CustomizeRoutine(ctx, nil, db, source.ID, bob, RoutineInput{
		Title:   "My 5x5",
		Text:    "Lighter squats.",
		TagList: "strength",
	})
	require.NoError(t, err)
	assert.NotEqual(t, source.ID, copyOf.ID)
	assert.Equal(t, bob, copyOf.OwnerID)
	assert.Equal(t, copyOf.ID, entry.RoutineID)
	assert.Zero(t, entry.CompletedCount)

	original, err := GetRoutine(ctx, db, source.ID)
	require.NoError(t, err)
	assert.Equal(t, "5x5", original.Title)
	assert.Equal(t, alice, original.OwnerID)

	journal, err := ListJournal(ctx, db, bob)
	require.NoError(t, err)
	require.Len(t, journal.Planned, 1)
	assert.Equal(t, "My 5x5", journal.Planned[0].Routine.Title)

	_, _, err = CustomizeRoutine(ctx, nil, db, uuid.New(), bob, RoutineInput{Title: "x", Text: "x", TagList: "abc"})
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, _, err = CustomizeRoutine(ctx, nil, db, source.ID, uuid.Nil, RoutineInput{})
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))
}

func TestListRoutinesByLikesOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")

	quiet := newRoutine(t, db, alice, "Quiet", "easy")
	popular := newRoutine(t, db, alice, "Popular", "hard")
	middle := newRoutine(t, db, alice, "Middle", "medium")

	for i, name := range []string{"fan_one", "fan_two"} {
		fan := newUser(t, db, name)
		_, _, err := ToggleLike(ctx, nil, db, fan, popular.ID)
		require.NoError(t, err)
		if i == 0 {
			_, _, err = ToggleLike(ctx, nil, db, fan, middle.ID)
			require.NoError(t, err)
		}
	}

	first, err := ListRoutinesByLikes(ctx, nil, db, 0, 10)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, popular.ID, first[0].ID)
	assert.Equal(t, middle.ID, first[1].ID)
	assert.Equal(t, quiet.ID, first[2].ID)

	second, err := ListRoutinesByLikes(ctx, nil, db, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	page, err := ListRoutinesByLikes(ctx, nil, db, 2, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, quiet.ID, page[0].ID)
}

func TestListRoutinesByLikesCache(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cache := newMemoryCache()
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")

	first := newRoutine(t, db, alice, "First", "easy")
	second := newRoutine(t, db, alice, "Second", "hard")

	fresh, err := ListRoutinesByLikes(ctx, cache, db, 0, 10)
	require.NoError(t, err)
	cached, err := ListRoutinesByLikes(ctx, cache, db, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	require.Len(t, cached, len(fresh))
	for i := range fresh {
		assert.Equal(t, fresh[i].ID, cached[i].ID)
		assert.Equal(t, fresh[i].Title, cached[i].Title)
		assert.Equal(t, fresh[i].LikeCount, cached[i].LikeCount)
		assert.Equal(t, fresh[i].Owner.Username, cached[i].Owner.Username)
		assert.Equal(t, tagTexts(fresh[i].Tags), tagTexts(cached[i].Tags))
		assert.True(t, fresh[i].PublishedAt.Equal(cached[i].PublishedAt))
	}

	_, _, err = ToggleLike(ctx, cache, db, bob, first.ID)
	require.NoError(t, err)

	routines, err := ListRoutinesByLikes(ctx, cache, db, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "a like must invalidate cached pages")
	require.Len(t, routines, 2)
	assert.Equal(t, first.ID, routines[0].ID)
	assert.Equal(t, second.ID, routines[1].ID)
}

func TestListRoutinesByRecency(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")

	older := newRoutine(t, db, alice, "Older", "easy")
	newer := newRoutine(t, db, alice, "Newer", "hard")
	require.NoError(t, db.Model(&Routine{}).Where("id = ?", older.ID).
		UpdateColumn("published_at", newer.PublishedAt.Add(-time.Hour)).Error)

	routines, err := ListRoutinesByRecency(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, routines, 1)
	assert.Equal(t, newer.ID, routines[0].ID)

	count, err := CountRoutines(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
