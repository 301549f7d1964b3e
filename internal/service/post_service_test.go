package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sevensfive/DevHub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn     func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn            func(context.Context, int, int, uint) ([]*models.Post, error)
	deleteFn          func(context.Context, uint) error
	isLikedFn         func(context.Context, uint, uint) (bool, error)
	getLikedPostIDsFn func(context.Context, uint, []uint) ([]uint, error)
	likeFn            func(context.Context, uint, uint) error
	unlikeFn          func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	return s.getLikedPostIDsFn(ctx, userID, postIDs)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:          func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:         func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByUserIDFn:     func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		listFn:            func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		isLikedFn:         func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		getLikedPostIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		likeFn:            func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:          func(_ context.Context, _, _ uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo())

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Text: ""})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1,
		Text:   strings.Repeat("a", maxPostLen+1),
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestCreatePostPersistsAndRefetches(t *testing.T) {
	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 11
		created = post
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id, currentUserID uint) (*models.Post, error) {
		require.Equal(t, uint(11), id)
		require.Equal(t, uint(3), currentUserID)
		return &models.Post{ID: id, UserID: 3, Text: created.Text}, nil
	}

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 3, Text: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, uint(11), post.ID)
	assert.Equal(t, "hello world", post.Text)
	require.NotNil(t, created)
	assert.Equal(t, uint(3), created.UserID)
}

func TestDeletePostOnlyAuthor(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}
	deleted := false
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewPostService(repo)

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 2, PostID: 5})
	assertAppErrorCode(t, err, models.CodeNotAuthorized)
	assert.False(t, deleted)

	err = svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 5})
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeletePostMissing(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewPostService(repo)
	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 99})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestLikePostMissingPost(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	liked := false
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		liked = true
		return nil
	}

	svc := NewPostService(repo)
	_, err := svc.LikePost(context.Background(), 1, 99)
	assertAppErrorCode(t, err, models.CodeNotFound)
	assert.False(t, liked)
}

func TestLikePostConflict(t *testing.T) {
	repo := noopPostRepo()
	repo.likeFn = func(_ context.Context, _, postID uint) error {
		return models.NewAlreadyLikedError(postID)
	}

	svc := NewPostService(repo)
	_, err := svc.LikePost(context.Background(), 1, 5)
	assertAppErrorCode(t, err, models.CodeAlreadyLiked)
}

func TestUnlikePostNotLiked(t *testing.T) {
	repo := noopPostRepo()
	repo.unlikeFn = func(_ context.Context, _, postID uint) error {
		return models.NewNotLikedError(postID)
	}

	svc := NewPostService(repo)
	_, err := svc.UnlikePost(context.Background(), 1, 5)
	assertAppErrorCode(t, err, models.CodeNotLiked)
}

func TestLikePostReturnsFreshPost(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, currentUserID uint) (*models.Post, error) {
		post := &models.Post{ID: id, UserID: 2}
		if currentUserID != 0 {
			post.Liked = true
			post.LikesCount = 1
		}
		return post, nil
	}

	svc := NewPostService(repo)
	post, err := svc.LikePost(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.True(t, post.Liked)
	assert.Equal(t, 1, post.LikesCount)
}

// concurrentLikeStore models the conditional-insert semantics of the real
// store: first like per (user, post) wins, duplicates report a conflict.
type concurrentLikeStore struct {
	mu    sync.Mutex
	likes map[[2]uint]bool
}

func (c *concurrentLikeStore) like(userID, postID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := [2]uint{userID, postID}
	if c.likes[key] {
		return models.NewAlreadyLikedError(postID)
	}
	c.likes[key] = true
	return nil
}

func TestConcurrentLikesNoLostUpdates(t *testing.T) {
	store := &concurrentLikeStore{likes: map[[2]uint]bool{}}
	repo := noopPostRepo()
	repo.likeFn = func(_ context.Context, userID, postID uint) error {
		return store.like(userID, postID)
	}

	svc := NewPostService(repo)

	const users = 50
	var wg sync.WaitGroup
	errs := make([]error, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.LikePost(context.Background(), uint(i+1), 1)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "user %d", i+1)
	}
	assert.Len(t, store.likes, users)
}

func TestConcurrentDuplicateLikeOneWinner(t *testing.T) {
	store := &concurrentLikeStore{likes: map[[2]uint]bool{}}
	repo := noopPostRepo()
	repo.likeFn = func(_ context.Context, userID, postID uint) error {
		return store.like(userID, postID)
	}

	svc := NewPostService(repo)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.LikePost(context.Background(), 1, 1)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assertAppErrorCode(t, err, models.CodeAlreadyLiked)
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, store.likes, 1)
}
