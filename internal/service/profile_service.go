package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sevensfive/DevHub/internal/models"
	"github.com/sevensfive/DevHub/internal/repository"
	"github.com/sevensfive/DevHub/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

type UpsertProfileInput struct {
	UserID         uint
	Handle         string
	Status         string
	Company        string
	Website        string
	Location       string
	Skills         []string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Linkedin       string
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) ListProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx, limit, offset)
}

func (s *ProfileService) GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.profileRepo.GetByHandle(ctx, handle)
}

func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpsertProfile creates or replaces the caller's own profile. A profile is
// always bound to the authenticated user; there is no way to edit another
// user's profile through this path.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if in.Handle == "" {
		return nil, models.NewValidationError("Handle is required")
	}
	if err := validation.ValidateHandle(in.Handle); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Status == "" {
		return nil, models.NewValidationError("Status is required")
	}
	if len(in.Skills) == 0 {
		return nil, models.NewValidationError("At least one skill is required")
	}

	skills := make([]string, 0, len(in.Skills))
	for _, sk := range in.Skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			skills = append(skills, sk)
		}
	}
	if len(skills) == 0 {
		return nil, models.NewValidationError("At least one non-empty skill is required")
	}

	// Handle uniqueness across other users: a handle owned by someone else
	// is rejected up front; the DB unique index backstops the race.
	if existing, err := s.profileRepo.GetByHandle(ctx, in.Handle); err == nil && existing.UserID != in.UserID {
		return nil, models.NewValidationError("Handle already taken")
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		// update in place
	case isNotFound(err):
		profile = &models.Profile{UserID: in.UserID}
	default:
		return nil, err
	}

	profile.Handle = in.Handle
	profile.Status = in.Status
	profile.Company = in.Company
	profile.Website = in.Website
	profile.Location = in.Location
	profile.Skills = strings.Join(skills, ",")
	profile.Bio = in.Bio
	profile.GithubUsername = in.GithubUsername
	profile.Youtube = in.Youtube
	profile.Twitter = in.Twitter
	profile.Linkedin = in.Linkedin

	if profile.ID == 0 {
		err = s.profileRepo.Create(ctx, profile)
	} else {
		err = s.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	profile.Normalize()
	return profile, nil
}

// DeleteProfile removes the caller's own profile. The account stays.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID uint) error {
	return s.profileRepo.DeleteByUserID(ctx, userID)
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
