package sqlite

import (
	"context"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the repository.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Get retrieves the singleton local profile.
func (repo *profileRepository) Get(ctx context.Context) (*entity.UserProfile, error) {
	var profileM model.UserProfileModel

	err := repo.db.WithContext(ctx).Order("id").First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return toProfileDomain(&profileM), nil
}

// Save inserts the profile or updates the existing row, keeping the
// at-most-one invariant: the first row always wins as the singleton.
func (repo *profileRepository) Save(ctx context.Context, profile *entity.UserProfile) error {
	profileM := fromProfileDomain(profile)

	var existing model.UserProfileModel
	err := repo.db.WithContext(ctx).Order("id").First(&existing).Error

	switch {
	case err == nil:
		profileM.ID = existing.ID
		if err := repo.db.WithContext(ctx).Save(profileM).Error; err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
			return errors.Wrap(err, "failed to create profile")
		}
	default:
		return errors.Wrap(err, "failed to load profile for save")
	}

	profile.ID = profileM.ID

	return nil
}

// DeleteAll removes every profile row.
func (repo *profileRepository) DeleteAll(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Where("1 = 1").Delete(&model.UserProfileModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete profiles")
	}

	return nil
}

// --- Mapper Functions ---

func toProfileDomain(data *model.UserProfileModel) *entity.UserProfile {
	if data == nil {
		return nil
	}

	return &entity.UserProfile{
		ID:                 data.ID,
		Name:               data.Name,
		Gender:             entity.Gender(data.Gender),
		DateOfBirth:        data.DateOfBirth,
		HeightCm:           data.HeightCm,
		CurrentWeightKg:    data.CurrentWeightKg,
		GoalWeightKg:       data.GoalWeightKg,
		ActivityLevel:      entity.ActivityLevel(data.ActivityLevel),
		Goal:               entity.Goal(data.Goal),
		DailyPointsBudget:  data.DailyPointsBudget,
		WeeklyPointsBudget: data.WeeklyPointsBudget,
		WaterGoalMl:        data.WaterGoalMl,
		OnboardingComplete: data.OnboardingComplete,
		AIAPIKey:           data.AIAPIKey,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

func fromProfileDomain(data *entity.UserProfile) *model.UserProfileModel {
	if data == nil {
		return nil
	}

	return &model.UserProfileModel{
		ID:                 data.ID,
		Name:               data.Name,
		Gender:             string(data.Gender),
		DateOfBirth:        data.DateOfBirth,
		HeightCm:           data.HeightCm,
		CurrentWeightKg:    data.CurrentWeightKg,
		GoalWeightKg:       data.GoalWeightKg,
		ActivityLevel:      string(data.ActivityLevel),
		Goal:               string(data.Goal),
		DailyPointsBudget:  data.DailyPointsBudget,
		WeeklyPointsBudget: data.WeeklyPointsBudget,
		WaterGoalMl:        data.WaterGoalMl,
		OnboardingComplete: data.OnboardingComplete,
		AIAPIKey:           data.AIAPIKey,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
