package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProfileValidation = errors.New("profile validation failed")
)

// ProfileService reads and upserts the singleton profile.
type ProfileService interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// GetProfile returns the stored profile, or the metric-units default
// before the first save. Storage failures degrade to the default too.
func (s *profileService) GetProfile(ctx context.Context) (*domain.Profile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).Warn("profile read failed, returning default profile")
		}
		return domain.DefaultProfile(), nil
	}
	return profile, nil
}

// SaveProfile upserts the profile. Height arrives already converted to
// canonical cm by the caller.
func (s *profileService) SaveProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if profile.HeightCm != nil && *profile.HeightCm <= 0 {
		return nil, fmt.Errorf("%w: height must be positive", ErrProfileValidation)
	}
	switch profile.UnitPreference {
	case "", domain.UnitsMetric, domain.UnitsImperial:
	default:
		return nil, fmt.Errorf("%w: unit preference %q", ErrProfileValidation, profile.UnitPreference)
	}
	if profile.UnitPreference == "" {
		profile.UnitPreference = domain.UnitsMetric
	}

	if err := s.profileRepo.Put(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.Get(ctx)
}
