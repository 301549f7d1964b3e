package repository

import (
	"testing"

	"github.com/sevensfive/DevHub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "post")

	comment := &models.Comment{Text: "hello", UserID: author.ID, PostID: post.ID}
	require.NoError(t, repo.Create(ctxb(), comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetByID(ctxb(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "author", got.User.Username)
}

func TestCommentRepositoryGetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(ctxb(), 9999)
	assertCode(t, err, models.CodeCommentNotFound)
}

func TestCommentRepositoryListByPostNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "post")
	other := createTestPost(t, db, author, "other")

	createTestComment(t, db, author, post, "first")
	createTestComment(t, db, author, post, "second")
	createTestComment(t, db, author, other, "elsewhere")

	comments, err := repo.ListByPost(ctxb(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// Equal timestamps fall back to id ordering, newest first.
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
}

func TestCommentRepositoryDeleteFromPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "post")
	comment := createTestComment(t, db, author, post, "bye")

	require.NoError(t, repo.DeleteFromPost(ctxb(), comment.ID, post.ID))

	_, err := repo.GetByID(ctxb(), comment.ID)
	assertCode(t, err, models.CodeCommentNotFound)

	// Deleting again is a conflict, not a success.
	assertCode(t, repo.DeleteFromPost(ctxb(), comment.ID, post.ID), models.CodeCommentNotFound)
}

func TestCommentRepositoryDeleteScopedToPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "post")
	other := createTestPost(t, db, author, "other")
	comment := createTestComment(t, db, author, post, "stay")

	// A comment id paired with the wrong post deletes nothing.
	assertCode(t, repo.DeleteFromPost(ctxb(), comment.ID, other.ID), models.CodeCommentNotFound)

	got, err := repo.GetByID(ctxb(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "stay", got.Text)
}
