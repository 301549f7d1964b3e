package seed

import (
	"testing"
	"time"

	"github.com/sevensfive/DevHub/internal/database"
	"github.com/sevensfive/DevHub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: database.NewGormLogger(),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFactoryDryRunWritesNothing(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Email)

	profile, err := f.CreateProfile(user)
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)
	assert.NotEmpty(t, profile.SkillList)
}

func TestBuildPostTimestampSpread(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, MaxDays: 30})
	user := &models.User{ID: 1}

	for i := 0; i < 20; i++ {
		post := f.BuildPost(user)
		assert.NotEmpty(t, post.Text)
		assert.Equal(t, uint(1), post.UserID)
		assert.True(t, post.CreatedAt.Before(time.Now()))
		assert.True(t, post.CreatedAt.After(time.Now().Add(-31*24*time.Hour)))
	}
}

func TestSeedPopulatesDatabase(t *testing.T) {
	db := newSeedTestDB(t)

	err := Seed(db, Options{
		NumUsers:   5,
		NumPosts:   10,
		SkipBcrypt: true,
	})
	require.NoError(t, err)

	var users, posts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(10), posts)

	// No duplicate likes may exist per (user, post).
	type pair struct {
		UserID uint
		PostID uint
		N      int64
	}
	var dupes []pair
	require.NoError(t, db.Model(&models.Like{}).
		Select("user_id, post_id, COUNT(*) as n").
		Group("user_id, post_id").
		Having("COUNT(*) > 1").
		Scan(&dupes).Error)
	assert.Empty(t, dupes)
}

func TestSeedCleanRemovesPreviousData(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumPosts: 4, SkipBcrypt: true}))
	require.NoError(t, Seed(db, Options{NumUsers: 2, NumPosts: 2, SkipBcrypt: true, ShouldClean: true}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(2), users)
}
