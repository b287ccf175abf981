package sqlite

import (
	"context"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// dailyLogRepository implements the repository.DailyLogRepository interface using GORM.
type dailyLogRepository struct {
	db *gorm.DB
}

// NewDailyLogRepository is the constructor for dailyLogRepository.
func NewDailyLogRepository(db *gorm.DB) repository.DailyLogRepository {
	return &dailyLogRepository{db: db}
}

// FindByID retrieves a log by its local key.
func (repo *dailyLogRepository) FindByID(ctx context.Context, id uint) (*entity.DailyLog, error) {
	var logM model.DailyLogModel

	err := repo.db.WithContext(ctx).First(&logM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDailyLogNotFound
		}

		return nil, errors.Wrap(err, "failed to find daily log by id")
	}

	return toDailyLogDomain(&logM), nil
}

// FindByDate retrieves the log for a calendar date.
func (repo *dailyLogRepository) FindByDate(ctx context.Context, date string) (*entity.DailyLog, error) {
	var logM model.DailyLogModel

	err := repo.db.WithContext(ctx).Where("date = ?", date).First(&logM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDailyLogNotFound
		}

		return nil, errors.Wrap(err, "failed to find daily log by date")
	}

	return toDailyLogDomain(&logM), nil
}

// GetOrCreate retrieves the log for a date, lazily creating an empty one.
func (repo *dailyLogRepository) GetOrCreate(ctx context.Context, date string) (*entity.DailyLog, error) {
	logM := model.DailyLogModel{Date: date}

	err := repo.db.WithContext(ctx).
		Where("date = ?", date).
		FirstOrCreate(&logM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get or create daily log")
	}

	return toDailyLogDomain(&logM), nil
}

// Update modifies an existing log.
func (repo *dailyLogRepository) Update(ctx context.Context, log *entity.DailyLog) error {
	logM := fromDailyLogDomain(log)

	if err := repo.db.WithContext(ctx).Save(logM).Error; err != nil {
		return errors.Wrap(err, "failed to update daily log")
	}

	return nil
}

// All retrieves every local log.
func (repo *dailyLogRepository) All(ctx context.Context) ([]*entity.DailyLog, error) {
	var logMs []model.DailyLogModel

	if err := repo.db.WithContext(ctx).Order("date").Find(&logMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list daily logs")
	}

	logs := make([]*entity.DailyLog, 0, len(logMs))
	for i := range logMs {
		logs = append(logs, toDailyLogDomain(&logMs[i]))
	}

	return logs, nil
}

// DeleteAll removes every log.
func (repo *dailyLogRepository) DeleteAll(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Where("1 = 1").Delete(&model.DailyLogModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete daily logs")
	}

	return nil
}

// --- Mapper Functions ---

func toDailyLogDomain(data *model.DailyLogModel) *entity.DailyLog {
	if data == nil {
		return nil
	}

	return &entity.DailyLog{
		ID:               data.ID,
		Date:             data.Date,
		TotalPointsUsed:  data.TotalPointsUsed,
		WeeklyPointsUsed: data.WeeklyPointsUsed,
		WaterMl:          data.WaterMl,
	}
}

func fromDailyLogDomain(data *entity.DailyLog) *model.DailyLogModel {
	if data == nil {
		return nil
	}

	return &model.DailyLogModel{
		ID:               data.ID,
		Date:             data.Date,
		TotalPointsUsed:  data.TotalPointsUsed,
		WeeklyPointsUsed: data.WeeklyPointsUsed,
		WaterMl:          data.WaterMl,
	}
}
