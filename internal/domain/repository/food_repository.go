package repository

import (
	"context"
	"errors"

	"bodybalance/internal/domain/entity"
)

// ErrFoodNotFound is returned when a food item does not exist locally.
var ErrFoodNotFound = errors.New("food item not found")

// FoodRepository persists food and drink definitions.
type FoodRepository interface {
	// FindByID retrieves a single food item by its local key.
	FindByID(ctx context.Context, id uint) (*entity.FoodItem, error)

	// FindByName retrieves a food item by case-insensitive name match.
	// Name is the de-duplication key for user foods pulled from remote.
	FindByName(ctx context.Context, name string) (*entity.FoodItem, error)

	// FindBySource retrieves all food items with the given source tag.
	FindBySource(ctx context.Context, source entity.FoodSource) ([]*entity.FoodItem, error)

	// FindFavorites retrieves all items flagged as favorite.
	FindFavorites(ctx context.Context) ([]*entity.FoodItem, error)

	// All retrieves every food item.
	All(ctx context.Context) ([]*entity.FoodItem, error)

	// Create persists a new food item and assigns its local key.
	Create(ctx context.Context, food *entity.FoodItem) error

	// Update modifies an existing food item.
	Update(ctx context.Context, food *entity.FoodItem) error

	// DeleteAll removes all food items. Used only by full data import/reset.
	DeleteAll(ctx context.Context) error
}
