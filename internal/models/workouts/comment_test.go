package models

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	r := newRoutine(t, db, alice, "5x5", "strength")

	c, err := AddComment(ctx, db, bob, r.ID, "  Great routine  ")
	require.NoError(t, err)
	assert.Equal(t, "Great routine", c.Text)
	assert.Equal(t, "bob", c.CreatedBy.Username)
	assert.False(t, c.PublishedAt.IsZero())

	_, err = AddComment(ctx, db, alice, r.ID, "Thanks")
	require.NoError(t, err)

	comments, err := ListComments(ctx, db, r.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Great routine", comments[0].Text)

	got, err := GetRoutine(ctx, db, r.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "alice", got.Comments[1].CreatedBy.Username)
}

func TestAddCommentAnonymous(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")
	r := newRoutine(t, db, alice, "5x5", "strength")

	_, err := AddComment(ctx, db, uuid.Nil, r.ID, "Nice")
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))

	var n int64
	require.NoError(t, db.Model(&Comment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAddCommentInvalid(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")
	r := newRoutine(t, db, alice, "5x5", "strength")

	for _, text := range []string{"", "   ", strings.Repeat("a", 1001)} {
		_, err := AddComment(ctx, db, alice, r.ID, text)
		require.True(t, errors.Is(err, utils.ErrBadRequest))
		var appErr *utils.CustomError
		require.True(t, utils.As(err, &appErr))
		_, ok := appErr.Field("comment_text")
		assert.True(t, ok)
	}

	_, err := AddComment(ctx, db, alice, uuid.New(), "Nice")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestAddCommentUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := newUser(t, db, "alice")
	r := newRoutine(t, db, alice, "5x5", "strength")

	_, err := AddComment(ctx, db, uuid.New(), r.ID, "Nice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInternalServerError))
	var appErr *utils.CustomError
	assert.True(t, utils.As(err, &appErr))

	var n int64
	require.NoError(t, db.Model(&Comment{}).Count(&n).Error)
	assert.Zero(t, n)
}
