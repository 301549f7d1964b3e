// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/sevensfive/DevHub/internal/cache"
	"github.com/sevensfive/DevHub/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for developer profiles.
type ProfileRepository interface {
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile

	err := cache.Aside(ctx, cache.ProfileKey(handle), &profile, cache.ProfileTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").
			Where("handle = ?", handle).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", handle)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// The cached JSON carries SkillList but not the comma-separated
	// column, so a cache hit rebuilds it rather than renormalizing.
	if profile.Skills == "" && len(profile.SkillList) > 0 {
		profile.Skills = strings.Join(profile.SkillList, ",")
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Handle already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	// A rename must also evict the entry cached under the old handle.
	var prevHandle string
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profile.ID).Pluck("handle", &prevHandle).Error; err != nil {
		return models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Handle already taken")
		}
		return models.NewInternalError(err)
	}
	if prevHandle != "" && prevHandle != profile.Handle {
		cache.InvalidateProfile(ctx, prevHandle)
	}
	cache.InvalidateProfile(ctx, profile.Handle)
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.Handle)
	return nil
}
