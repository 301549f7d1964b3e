package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/sevensfive/DevHub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestPostRepositoryLikeIsIdempotentlyRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author, "like me")

	require.NoError(t, repo.Like(ctxb(), liker.ID, post.ID))

	// The second like observes zero affected rows and reports the conflict.
	err := repo.Like(ctxb(), liker.ID, post.ID)
	assertCode(t, err, models.CodeAlreadyLiked)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostRepositoryUnlike(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author, "like me")

	// Unliking before liking reports NOT_LIKED.
	assertCode(t, repo.Unlike(ctxb(), liker.ID, post.ID), models.CodeNotLiked)

	require.NoError(t, repo.Like(ctxb(), liker.ID, post.ID))
	require.NoError(t, repo.Unlike(ctxb(), liker.ID, post.ID))

	// And again after removal.
	assertCode(t, repo.Unlike(ctxb(), liker.ID, post.ID), models.CodeNotLiked)
}

func TestPostRepositoryLikeUnlikeCycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author, "cycle")

	// like -> unlike -> like again must land in the liked state.
	require.NoError(t, repo.Like(ctxb(), liker.ID, post.ID))
	require.NoError(t, repo.Unlike(ctxb(), liker.ID, post.ID))
	require.NoError(t, repo.Like(ctxb(), liker.ID, post.ID))

	liked, err := repo.IsLiked(ctxb(), liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestPostRepositoryGetByIDDetails(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, author, "popular")

	require.NoError(t, repo.Like(ctxb(), alice.ID, post.ID))
	require.NoError(t, repo.Like(ctxb(), bob.ID, post.ID))
	createTestComment(t, db, alice, post, "first")
	createTestComment(t, db, bob, post, "second")

	// Alice sees her own like.
	got, err := repo.GetByID(ctxb(), post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikesCount)
	assert.Equal(t, 2, got.CommentsCount)
	assert.True(t, got.Liked)
	assert.Equal(t, "author", got.User.Username)
	require.Len(t, got.Comments, 2)

	// The author never liked it.
	got, err = repo.GetByID(ctxb(), post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, got.Liked)

	// Anonymous readers always see liked=false.
	got, err = repo.GetByID(ctxb(), post.ID, 0)
	require.NoError(t, err)
	assert.False(t, got.Liked)
	assert.Equal(t, 2, got.LikesCount)
}

func TestPostRepositoryGetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(ctxb(), 12345, 0)
	assertCode(t, err, models.CodeNotFound)
}

func TestPostRepositoryListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	first := createTestPost(t, db, author, "first")
	second := createTestPost(t, db, author, "second")
	require.NoError(t, db.Model(second).Update("created_at", first.CreatedAt.Add(time.Second)).Error)

	posts, err := repo.List(ctxb(), 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Text)
	assert.Equal(t, "first", posts[1].Text)
}

func TestPostRepositoryGetByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestPost(t, db, alice, "mine")
	createTestPost(t, db, bob, "not mine")

	posts, err := repo.GetByUserID(ctxb(), alice.ID, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Text)
}

func TestPostRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "doomed")

	require.NoError(t, repo.Delete(ctxb(), post.ID))

	_, err := repo.GetByID(ctxb(), post.ID, 0)
	assertCode(t, err, models.CodeNotFound)
}

func TestPostRepositoryGetLikedPostIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	p1 := createTestPost(t, db, author, "one")
	p2 := createTestPost(t, db, author, "two")
	p3 := createTestPost(t, db, author, "three")

	require.NoError(t, repo.Like(ctxb(), liker.ID, p1.ID))
	require.NoError(t, repo.Like(ctxb(), liker.ID, p3.ID))

	ids, err := repo.GetLikedPostIDs(ctxb(), liker.ID, []uint{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{p1.ID, p3.ID}, ids)

	ids, err = repo.GetLikedPostIDs(ctxb(), liker.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
