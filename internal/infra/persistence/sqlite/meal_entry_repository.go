package sqlite

import (
	"context"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// mealEntryRepository implements the repository.MealEntryRepository interface using GORM.
type mealEntryRepository struct {
	db *gorm.DB
}

// NewMealEntryRepository is the constructor for mealEntryRepository.
func NewMealEntryRepository(db *gorm.DB) repository.MealEntryRepository {
	return &mealEntryRepository{db: db}
}

// FindByID retrieves a single entry by its local key.
func (repo *mealEntryRepository) FindByID(ctx context.Context, id uint) (*entity.MealEntry, error) {
	var entryM model.MealEntryModel

	err := repo.db.WithContext(ctx).First(&entryM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMealEntryNotFound
		}

		return nil, errors.Wrap(err, "failed to find meal entry by id")
	}

	return toMealEntryDomain(&entryM), nil
}

// FindByLog retrieves all entries belonging to a daily log.
func (repo *mealEntryRepository) FindByLog(ctx context.Context, dailyLogID uint) ([]*entity.MealEntry, error) {
	var entryMs []model.MealEntryModel

	err := repo.db.WithContext(ctx).
		Where("daily_log_id = ?", dailyLogID).
		Order("logged_at").
		Find(&entryMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find meal entries by log")
	}

	return toMealEntryDomainList(entryMs), nil
}

// ListRecent retrieves entries ordered by LoggedAt descending.
func (repo *mealEntryRepository) ListRecent(ctx context.Context, limit int) ([]*entity.MealEntry, error) {
	var entryMs []model.MealEntryModel

	err := repo.db.WithContext(ctx).
		Order("logged_at DESC").
		Limit(limit).
		Find(&entryMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent meal entries")
	}

	return toMealEntryDomainList(entryMs), nil
}

// Create persists a new entry and assigns its local key.
func (repo *mealEntryRepository) Create(ctx context.Context, entry *entity.MealEntry) error {
	entryM := fromMealEntryDomain(entry)
	entryM.ID = 0

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		return errors.Wrap(err, "failed to create meal entry")
	}

	entry.ID = entryM.ID

	return nil
}

// Update modifies an existing entry.
func (repo *mealEntryRepository) Update(ctx context.Context, entry *entity.MealEntry) error {
	entryM := fromMealEntryDomain(entry)

	if err := repo.db.WithContext(ctx).Save(entryM).Error; err != nil {
		return errors.Wrap(err, "failed to update meal entry")
	}

	return nil
}

// Delete removes a single entry.
func (repo *mealEntryRepository) Delete(ctx context.Context, id uint) error {
	if err := repo.db.WithContext(ctx).Delete(&model.MealEntryModel{}, id).Error; err != nil {
		return errors.Wrap(err, "failed to delete meal entry")
	}

	return nil
}

// DeleteByLog removes every entry of a daily log.
func (repo *mealEntryRepository) DeleteByLog(ctx context.Context, dailyLogID uint) error {
	err := repo.db.WithContext(ctx).
		Where("daily_log_id = ?", dailyLogID).
		Delete(&model.MealEntryModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete meal entries by log")
	}

	return nil
}

// DeleteAll removes every entry.
func (repo *mealEntryRepository) DeleteAll(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Where("1 = 1").Delete(&model.MealEntryModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete meal entries")
	}

	return nil
}

// --- Mapper Functions ---

func toMealEntryDomain(data *model.MealEntryModel) *entity.MealEntry {
	if data == nil {
		return nil
	}

	return &entity.MealEntry{
		ID:         data.ID,
		DailyLogID: data.DailyLogID,
		FoodItem: entity.FoodItem{
			Name:          data.FoodItem.Name,
			Brand:         data.FoodItem.Brand,
			Barcode:       data.FoodItem.Barcode,
			Nutrition:     toNutritionDomain(data.FoodItem.Nutrition),
			PointsPer100g: data.FoodItem.PointsPer100g,
			ServingSizeG:  data.FoodItem.ServingSizeG,
			Unit:          entity.Unit(data.FoodItem.Unit),
			IsZeroPoint:   data.FoodItem.IsZeroPoint,
			Source:        entity.FoodSource(data.FoodItem.Source),
		},
		MealType:     entity.MealType(data.MealType),
		QuantityG:    data.QuantityG,
		Quantity:     data.Quantity,
		Points:       data.Points,
		WaterMlAdded: data.WaterMlAdded,
		LoggedAt:     data.LoggedAt,
	}
}

func toMealEntryDomainList(data []model.MealEntryModel) []*entity.MealEntry {
	entries := make([]*entity.MealEntry, 0, len(data))
	for i := range data {
		entries = append(entries, toMealEntryDomain(&data[i]))
	}

	return entries
}

func fromMealEntryDomain(data *entity.MealEntry) *model.MealEntryModel {
	if data == nil {
		return nil
	}

	return &model.MealEntryModel{
		ID:         data.ID,
		DailyLogID: data.DailyLogID,
		FoodItem: model.FoodSnapshotModel{
			Name:          data.FoodItem.Name,
			Brand:         data.FoodItem.Brand,
			Barcode:       data.FoodItem.Barcode,
			Nutrition:     fromNutritionDomain(data.FoodItem.Nutrition),
			PointsPer100g: data.FoodItem.PointsPer100g,
			ServingSizeG:  data.FoodItem.ServingSizeG,
			Unit:          string(data.FoodItem.Unit),
			IsZeroPoint:   data.FoodItem.IsZeroPoint,
			Source:        string(data.FoodItem.Source),
		},
		MealType:     string(data.MealType),
		QuantityG:    data.QuantityG,
		Quantity:     data.Quantity,
		Points:       data.Points,
		WaterMlAdded: data.WaterMlAdded,
		LoggedAt:     data.LoggedAt,
	}
}
