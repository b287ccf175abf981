package sqlite

import (
	"context"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// foodRepository implements the repository.FoodRepository interface using GORM.
type foodRepository struct {
	db *gorm.DB
}

// NewFoodRepository is the constructor for foodRepository.
func NewFoodRepository(db *gorm.DB) repository.FoodRepository {
	return &foodRepository{db: db}
}

// FindByID retrieves a single food item by its local key.
func (repo *foodRepository) FindByID(ctx context.Context, id uint) (*entity.FoodItem, error) {
	var foodM model.FoodItemModel

	err := repo.db.WithContext(ctx).First(&foodM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFoodNotFound
		}

		return nil, errors.Wrap(err, "failed to find food by id")
	}

	return toFoodDomain(&foodM), nil
}

// FindByName retrieves a food item by case-insensitive name match.
func (repo *foodRepository) FindByName(ctx context.Context, name string) (*entity.FoodItem, error) {
	var foodM model.FoodItemModel

	err := repo.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&foodM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFoodNotFound
		}

		return nil, errors.Wrap(err, "failed to find food by name")
	}

	return toFoodDomain(&foodM), nil
}

// FindBySource retrieves all food items with the given source tag.
func (repo *foodRepository) FindBySource(ctx context.Context, source entity.FoodSource) ([]*entity.FoodItem, error) {
	var foodMs []model.FoodItemModel

	err := repo.db.WithContext(ctx).
		Where("source = ?", string(source)).
		Find(&foodMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find foods by source")
	}

	return toFoodDomainList(foodMs), nil
}

// FindFavorites retrieves all items flagged as favorite.
func (repo *foodRepository) FindFavorites(ctx context.Context) ([]*entity.FoodItem, error) {
	var foodMs []model.FoodItemModel

	err := repo.db.WithContext(ctx).
		Where("is_favorite = ?", true).
		Find(&foodMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find favorite foods")
	}

	return toFoodDomainList(foodMs), nil
}

// All retrieves every food item.
func (repo *foodRepository) All(ctx context.Context) ([]*entity.FoodItem, error) {
	var foodMs []model.FoodItemModel

	if err := repo.db.WithContext(ctx).Order("id").Find(&foodMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list foods")
	}

	return toFoodDomainList(foodMs), nil
}

// Create persists a new food item and assigns its local key.
func (repo *foodRepository) Create(ctx context.Context, food *entity.FoodItem) error {
	foodM := fromFoodDomain(food)
	foodM.ID = 0

	if err := repo.db.WithContext(ctx).Create(foodM).Error; err != nil {
		return errors.Wrap(err, "failed to create food")
	}

	food.ID = foodM.ID

	return nil
}

// Update modifies an existing food item.
func (repo *foodRepository) Update(ctx context.Context, food *entity.FoodItem) error {
	foodM := fromFoodDomain(food)

	if err := repo.db.WithContext(ctx).Save(foodM).Error; err != nil {
		return errors.Wrap(err, "failed to update food")
	}

	return nil
}

// DeleteAll removes every food item.
func (repo *foodRepository) DeleteAll(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Where("1 = 1").Delete(&model.FoodItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete foods")
	}

	return nil
}

// --- Mapper Functions ---

func toFoodDomain(data *model.FoodItemModel) *entity.FoodItem {
	if data == nil {
		return nil
	}

	return &entity.FoodItem{
		ID:            data.ID,
		Name:          data.Name,
		Brand:         data.Brand,
		Barcode:       data.Barcode,
		Nutrition:     toNutritionDomain(data.Nutrition),
		PointsPer100g: data.PointsPer100g,
		ServingSizeG:  data.ServingSizeG,
		Unit:          entity.Unit(data.Unit),
		IsZeroPoint:   data.IsZeroPoint,
		IsFavorite:    data.IsFavorite,
		Source:        entity.FoodSource(data.Source),
		ImageURL:      data.ImageURL,
		CreatedAt:     data.CreatedAt,
	}
}

func toFoodDomainList(data []model.FoodItemModel) []*entity.FoodItem {
	foods := make([]*entity.FoodItem, 0, len(data))
	for i := range data {
		foods = append(foods, toFoodDomain(&data[i]))
	}

	return foods
}

func fromFoodDomain(data *entity.FoodItem) *model.FoodItemModel {
	if data == nil {
		return nil
	}

	return &model.FoodItemModel{
		ID:            data.ID,
		Name:          data.Name,
		Brand:         data.Brand,
		Barcode:       data.Barcode,
		Nutrition:     fromNutritionDomain(data.Nutrition),
		PointsPer100g: data.PointsPer100g,
		ServingSizeG:  data.ServingSizeG,
		Unit:          string(data.Unit),
		IsZeroPoint:   data.IsZeroPoint,
		IsFavorite:    data.IsFavorite,
		Source:        string(data.Source),
		ImageURL:      data.ImageURL,
		CreatedAt:     data.CreatedAt,
	}
}

func toNutritionDomain(data model.NutritionModel) entity.Nutrition {
	return entity.Nutrition{
		Calories:       data.Calories,
		Protein:        data.Protein,
		Fat:            data.Fat,
		SaturatedFat:   data.SaturatedFat,
		UnsaturatedFat: data.UnsaturatedFat,
		Carbs:          data.Carbs,
		Sugar:          data.Sugar,
		AddedSugar:     data.AddedSugar,
		Fiber:          data.Fiber,
	}
}

func fromNutritionDomain(data entity.Nutrition) model.NutritionModel {
	return model.NutritionModel{
		Calories:       data.Calories,
		Protein:        data.Protein,
		Fat:            data.Fat,
		SaturatedFat:   data.SaturatedFat,
		UnsaturatedFat: data.UnsaturatedFat,
		Carbs:          data.Carbs,
		Sugar:          data.Sugar,
		AddedSugar:     data.AddedSugar,
		Fiber:          data.Fiber,
	}
}
