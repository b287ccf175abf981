package sqlite

import (
	"context"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// weightRepository implements the repository.WeightRepository interface using GORM.
type weightRepository struct {
	db *gorm.DB
}

// NewWeightRepository is the constructor for weightRepository.
func NewWeightRepository(db *gorm.DB) repository.WeightRepository {
	return &weightRepository{db: db}
}

// FindByDate retrieves the entry for a calendar date.
func (repo *weightRepository) FindByDate(ctx context.Context, date string) (*entity.WeightEntry, error) {
	var entryM model.WeightEntryModel

	err := repo.db.WithContext(ctx).Where("date = ?", date).First(&entryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWeightNotFound
		}

		return nil, errors.Wrap(err, "failed to find weight entry by date")
	}

	return toWeightDomain(&entryM), nil
}

// Upsert inserts the entry or replaces the existing one for its date.
func (repo *weightRepository) Upsert(ctx context.Context, entry *entity.WeightEntry) error {
	entryM := fromWeightDomain(entry)
	entryM.ID = 0

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight_kg", "note"}),
		}).
		Create(entryM).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert weight entry")
	}

	entry.ID = entryM.ID

	return nil
}

// Delete removes the entry for a date.
func (repo *weightRepository) Delete(ctx context.Context, date string) error {
	err := repo.db.WithContext(ctx).
		Where("date = ?", date).
		Delete(&model.WeightEntryModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete weight entry")
	}

	return nil
}

// All retrieves every local entry ordered by date.
func (repo *weightRepository) All(ctx context.Context) ([]*entity.WeightEntry, error) {
	var entryMs []model.WeightEntryModel

	if err := repo.db.WithContext(ctx).Order("date").Find(&entryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list weight entries")
	}

	entries := make([]*entity.WeightEntry, 0, len(entryMs))
	for i := range entryMs {
		entries = append(entries, toWeightDomain(&entryMs[i]))
	}

	return entries, nil
}

// DeleteAll removes every entry.
func (repo *weightRepository) DeleteAll(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Where("1 = 1").Delete(&model.WeightEntryModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete weight entries")
	}

	return nil
}

// --- Mapper Functions ---

func toWeightDomain(data *model.WeightEntryModel) *entity.WeightEntry {
	if data == nil {
		return nil
	}

	return &entity.WeightEntry{
		ID:       data.ID,
		Date:     data.Date,
		WeightKg: data.WeightKg,
		Note:     data.Note,
	}
}

func fromWeightDomain(data *entity.WeightEntry) *model.WeightEntryModel {
	if data == nil {
		return nil
	}

	return &model.WeightEntryModel{
		ID:       data.ID,
		Date:     data.Date,
		WeightKg: data.WeightKg,
		Note:     data.Note,
	}
}
