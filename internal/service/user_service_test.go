package service

import (
	"context"
	"testing"

	"github.com/sevensfive/DevHub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserChangesDisplayFields(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "old_name", Avatar: "old.png"}, nil
	}
	var updated *models.User
	repo.updateFn = func(_ context.Context, user *models.User) error {
		updated = user
		return nil
	}

	svc := NewUserService(repo)
	user, err := svc.UpdateUser(context.Background(), UpdateUserInput{
		UserID:   5,
		Username: "new_name",
		Avatar:   "new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "new_name", user.Username)
	assert.Equal(t, "new.png", user.Avatar)
	require.NotNil(t, updated)
	assert.Equal(t, uint(5), updated.ID)
}

func TestUpdateUserPartial(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "keeper", Avatar: "old.png"}, nil
	}

	svc := NewUserService(repo)
	user, err := svc.UpdateUser(context.Background(), UpdateUserInput{
		UserID: 5,
		Avatar: "new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "keeper", user.Username)
	assert.Equal(t, "new.png", user.Avatar)
}

func TestUpdateUserInvalidUsername(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.UpdateUser(context.Background(), UpdateUserInput{
		UserID:   5,
		Username: "!!bad!!",
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestGetUserMissing(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewUserService(repo)
	_, err := svc.GetUserByID(context.Background(), 99)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
