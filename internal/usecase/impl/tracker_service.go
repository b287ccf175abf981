package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/domain/service"
	"bodybalance/internal/usecase"

	"github.com/pkg/errors"
)

// trackerService implements the TrackerUsecase interface. Every mutation
// commits locally inside a transaction first and only then hands the changed
// collection to the push pipeline, tagged with the identity active at that
// moment. Without a session the push step is skipped entirely.
type trackerService struct {
	txManager repository.TransactionManager
	sessions  service.SessionProvider
	push      usecase.PushUsecase
	logger    *slog.Logger
	now       func() time.Time
}

// NewTrackerService is the constructor for trackerService.
func NewTrackerService(
	txManager repository.TransactionManager,
	sessions service.SessionProvider,
	push usecase.PushUsecase,
	logger *slog.Logger,
) usecase.TrackerUsecase {
	return &trackerService{
		txManager: txManager,
		sessions:  sessions,
		push:      push,
		logger:    logger,
		now:       time.Now,
	}
}

// AddMealEntry logs a meal on a date, lazily creating the daily log.
func (srv *trackerService) AddMealEntry(ctx context.Context, date string, input *usecase.AddMealInput) (*entity.MealEntry, error) {
	if input == nil {
		return nil, errors.New("meal input is required")
	}
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	loggedAt := input.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = srv.now()
	}

	var entry *entity.MealEntry

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.NewDailyLogRepository()

		log, err := logRepo.GetOrCreate(ctx, date)
		if err != nil {
			return errors.Wrap(err, "failed to prepare daily log")
		}

		entry = &entity.MealEntry{
			DailyLogID:   log.ID,
			FoodItem:     input.Food,
			MealType:     input.MealType,
			QuantityG:    input.QuantityG,
			Quantity:     quantity,
			Points:       input.Points,
			WaterMlAdded: input.WaterMl,
			LoggedAt:     loggedAt,
		}

		if err := repoFactory.NewMealEntryRepository().Create(ctx, entry); err != nil {
			return errors.Wrap(err, "failed to create meal entry")
		}

		log.WaterMl += input.WaterMl
		if log.WaterMl < 0 {
			log.WaterMl = 0
		}

		return srv.recomputeDay(ctx, repoFactory, log)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add meal entry")
	}

	srv.pushDayIfActive(ctx, date)

	return entry, nil
}

// UpdateMealEntry applies the non-nil input fields to an entry.
func (srv *trackerService) UpdateMealEntry(ctx context.Context, id uint, input *usecase.UpdateMealInput) (*entity.MealEntry, error) {
	if input == nil {
		return nil, errors.New("meal input is required")
	}

	var (
		entry *entity.MealEntry
		date  string
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		mealRepo := repoFactory.NewMealEntryRepository()

		found, err := mealRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find meal entry")
		}

		if input.MealType != nil {
			found.MealType = *input.MealType
		}
		if input.QuantityG != nil {
			found.QuantityG = *input.QuantityG
		}
		if input.Quantity != nil {
			found.Quantity = *input.Quantity
		}
		if input.Points != nil {
			found.Points = *input.Points
		}

		if err := mealRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update meal entry")
		}

		log, err := repoFactory.NewDailyLogRepository().FindByID(ctx, found.DailyLogID)
		if err != nil {
			return errors.Wrap(err, "failed to load daily log")
		}

		entry = found
		date = log.Date

		return srv.recomputeDay(ctx, repoFactory, log)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update meal entry")
	}

	srv.pushDayIfActive(ctx, date)

	return entry, nil
}

// RemoveMealEntry deletes an entry and reverses the water it contributed.
func (srv *trackerService) RemoveMealEntry(ctx context.Context, id uint) error {
	var date string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		mealRepo := repoFactory.NewMealEntryRepository()

		entry, err := mealRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find meal entry")
		}

		if err := mealRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete meal entry")
		}

		log, err := repoFactory.NewDailyLogRepository().FindByID(ctx, entry.DailyLogID)
		if err != nil {
			return errors.Wrap(err, "failed to load daily log")
		}

		log.WaterMl -= entry.WaterMlAdded
		if log.WaterMl < 0 {
			log.WaterMl = 0
		}

		date = log.Date

		return srv.recomputeDay(ctx, repoFactory, log)
	})
	if err != nil {
		return errors.Wrap(err, "failed to remove meal entry")
	}

	srv.pushDayIfActive(ctx, date)

	return nil
}

// CopyDayEntries re-logs all entries of one date onto another.
func (srv *trackerService) CopyDayEntries(ctx context.Context, fromDate, toDate string) ([]*entity.MealEntry, error) {
	if _, err := parseDate(toDate); err != nil {
		return nil, err
	}

	var copied []*entity.MealEntry

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.NewDailyLogRepository()
		mealRepo := repoFactory.NewMealEntryRepository()

		source, err := logRepo.FindByDate(ctx, fromDate)
		if err != nil {
			if errors.Is(err, repository.ErrDailyLogNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load source day")
		}

		entries, err := mealRepo.FindByLog(ctx, source.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load source entries")
		}
		if len(entries) == 0 {
			return nil
		}

		target, err := logRepo.GetOrCreate(ctx, toDate)
		if err != nil {
			return errors.Wrap(err, "failed to prepare target day")
		}

		for _, src := range entries {
			entry := &entity.MealEntry{
				DailyLogID:   target.ID,
				FoodItem:     src.FoodItem,
				MealType:     src.MealType,
				QuantityG:    src.QuantityG,
				Quantity:     src.Quantity,
				Points:       src.Points,
				WaterMlAdded: src.WaterMlAdded,
				LoggedAt:     srv.now(),
			}

			if err := mealRepo.Create(ctx, entry); err != nil {
				return errors.Wrap(err, "failed to copy meal entry")
			}

			target.WaterMl += entry.WaterMlAdded
			copied = append(copied, entry)
		}

		return srv.recomputeDay(ctx, repoFactory, target)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to copy day entries")
	}

	if len(copied) > 0 {
		srv.pushDayIfActive(ctx, toDate)
	}

	return copied, nil
}

// AddWater adjusts the water total of a date. Negative amounts undo earlier
// additions; the total never drops below zero.
func (srv *trackerService) AddWater(ctx context.Context, date string, ml int) (*entity.DailyLog, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	var log *entity.DailyLog

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.NewDailyLogRepository()

		found, err := logRepo.GetOrCreate(ctx, date)
		if err != nil {
			return errors.Wrap(err, "failed to prepare daily log")
		}

		found.WaterMl += ml
		if found.WaterMl < 0 {
			found.WaterMl = 0
		}

		log = found

		return logRepo.Update(ctx, found)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add water")
	}

	srv.pushDayIfActive(ctx, date)

	return log, nil
}

// ResetWater zeroes the water total of a date and detaches the water
// recorded on its entries, so deleting one of them later does not subtract
// from the fresh zero.
func (srv *trackerService) ResetWater(ctx context.Context, date string) (*entity.DailyLog, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	var log *entity.DailyLog

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.NewDailyLogRepository()
		mealRepo := repoFactory.NewMealEntryRepository()

		found, err := logRepo.GetOrCreate(ctx, date)
		if err != nil {
			return errors.Wrap(err, "failed to prepare daily log")
		}

		entries, err := mealRepo.FindByLog(ctx, found.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load meal entries")
		}

		for _, entry := range entries {
			if entry.WaterMlAdded == 0 {
				continue
			}

			entry.WaterMlAdded = 0
			if err := mealRepo.Update(ctx, entry); err != nil {
				return errors.Wrap(err, "failed to detach entry water")
			}
		}

		found.WaterMl = 0
		log = found

		return logRepo.Update(ctx, found)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to reset water")
	}

	srv.pushDayIfActive(ctx, date)

	return log, nil
}

// ClearEntryWater detaches the water recorded on one entry without touching
// the day total.
func (srv *trackerService) ClearEntryWater(ctx context.Context, id uint) error {
	var date string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		mealRepo := repoFactory.NewMealEntryRepository()

		entry, err := mealRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find meal entry")
		}
		if entry.WaterMlAdded == 0 {
			return nil
		}

		entry.WaterMlAdded = 0
		if err := mealRepo.Update(ctx, entry); err != nil {
			return errors.Wrap(err, "failed to update meal entry")
		}

		log, err := repoFactory.NewDailyLogRepository().FindByID(ctx, entry.DailyLogID)
		if err != nil {
			return errors.Wrap(err, "failed to load daily log")
		}

		date = log.Date

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to clear entry water")
	}

	if date != "" {
		srv.pushDayIfActive(ctx, date)
	}

	return nil
}

// SaveProfile upserts the singleton profile and stamps UpdatedAt.
func (srv *trackerService) SaveProfile(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}

	now := srv.now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewProfileRepository().Save(ctx, profile)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}

	srv.pushProfileIfActive(ctx, profile)

	return profile, nil
}

// UpdateWeight updates the profile's current body weight.
func (srv *trackerService) UpdateWeight(ctx context.Context, weightKg float64) (*entity.UserProfile, error) {
	var profile *entity.UserProfile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		found, err := profileRepo.Get(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load profile")
		}

		found.CurrentWeightKg = weightKg
		found.UpdatedAt = srv.now()
		profile = found

		return profileRepo.Save(ctx, found)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update weight")
	}

	srv.pushProfileIfActive(ctx, profile)

	return profile, nil
}

// LogWeight records a body weight measurement for a date, replacing any
// earlier measurement on the same date.
func (srv *trackerService) LogWeight(ctx context.Context, date string, weightKg float64, note string) (*entity.WeightEntry, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	entry := &entity.WeightEntry{Date: date, WeightKg: weightKg, Note: note}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewWeightRepository().Upsert(ctx, entry)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to log weight")
	}

	if identity, ok := srv.sessions.Current(); ok {
		srv.push.PushWeight(ctx, identity.UserID, entry)
	}

	return entry, nil
}

// RemoveWeight deletes the measurement for a date, locally and remotely.
func (srv *trackerService) RemoveWeight(ctx context.Context, date string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewWeightRepository().Delete(ctx, date)
	})
	if err != nil {
		return errors.Wrap(err, "failed to remove weight")
	}

	if identity, ok := srv.sessions.Current(); ok {
		srv.push.DeleteWeight(ctx, identity.UserID, date)
	}

	return nil
}

// SaveCustomFood persists a user-authored food.
func (srv *trackerService) SaveCustomFood(ctx context.Context, food *entity.FoodItem) (*entity.FoodItem, error) {
	if food == nil {
		return nil, errors.New("food is required")
	}
	if strings.TrimSpace(food.Name) == "" {
		return nil, errors.New("food name is required")
	}

	food.Source = entity.SourceUser
	if food.CreatedAt.IsZero() {
		food.CreatedAt = srv.now()
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		foodRepo := repoFactory.NewFoodRepository()

		if food.ID == 0 {
			return foodRepo.Create(ctx, food)
		}

		return foodRepo.Update(ctx, food)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save custom food")
	}

	srv.pushFoodIfActive(ctx, food)

	return food, nil
}

// ToggleFavorite flips the favorite flag of a food.
func (srv *trackerService) ToggleFavorite(ctx context.Context, foodID uint) (*entity.FoodItem, error) {
	var food *entity.FoodItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		foodRepo := repoFactory.NewFoodRepository()

		found, err := foodRepo.FindByID(ctx, foodID)
		if err != nil {
			return errors.Wrap(err, "failed to find food")
		}

		found.IsFavorite = !found.IsFavorite
		food = found

		return foodRepo.Update(ctx, found)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to toggle favorite")
	}

	srv.pushFoodIfActive(ctx, food)

	return food, nil
}

// GetProfile retrieves the singleton profile.
func (srv *trackerService) GetProfile(ctx context.Context) (*entity.UserProfile, error) {
	var profile *entity.UserProfile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProfileRepository().Get(ctx)
		if err != nil {
			return err
		}
		profile = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// GetDailyLog retrieves the log for a date. Dates without any logged data
// yield an unsaved zero-valued log.
func (srv *trackerService) GetDailyLog(ctx context.Context, date string) (*entity.DailyLog, error) {
	log := &entity.DailyLog{Date: date}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDailyLogRepository().FindByDate(ctx, date)
		if err != nil {
			if errors.Is(err, repository.ErrDailyLogNotFound) {
				return nil
			}

			return err
		}
		log = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get daily log")
	}

	return log, nil
}

// GetEntriesForDate retrieves the entries logged on a date.
func (srv *trackerService) GetEntriesForDate(ctx context.Context, date string) ([]*entity.MealEntry, error) {
	var entries []*entity.MealEntry

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		log, err := repoFactory.NewDailyLogRepository().FindByDate(ctx, date)
		if err != nil {
			if errors.Is(err, repository.ErrDailyLogNotFound) {
				return nil
			}

			return err
		}

		entries, err = repoFactory.NewMealEntryRepository().FindByLog(ctx, log.ID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get entries for date")
	}

	return entries, nil
}

// GetRecentFoods lists recently logged foods, newest first, unique by name.
// When a food with the same name exists in the library, the library record
// is returned so the favorite flag and local key come through.
func (srv *trackerService) GetRecentFoods(ctx context.Context, limit int) ([]*entity.FoodItem, error) {
	if limit <= 0 {
		limit = 20
	}

	var foods []*entity.FoodItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// Over-fetch to survive duplicate names in the recent entries.
		entries, err := repoFactory.NewMealEntryRepository().ListRecent(ctx, limit*5)
		if err != nil {
			return err
		}

		foodRepo := repoFactory.NewFoodRepository()
		seen := make(map[string]bool, limit)

		for _, entry := range entries {
			key := strings.ToLower(entry.FoodItem.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			library, err := foodRepo.FindByName(ctx, entry.FoodItem.Name)
			switch {
			case err == nil:
				foods = append(foods, library)
			case errors.Is(err, repository.ErrFoodNotFound):
				snapshot := entry.FoodItem
				foods = append(foods, &snapshot)
			default:
				return err
			}

			if len(foods) == limit {
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent foods")
	}

	return foods, nil
}

// GetFavoriteFoods lists the foods flagged as favorite.
func (srv *trackerService) GetFavoriteFoods(ctx context.Context) ([]*entity.FoodItem, error) {
	var foods []*entity.FoodItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewFoodRepository().FindFavorites(ctx)
		if err != nil {
			return err
		}
		foods = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get favorite foods")
	}

	return foods, nil
}

// GetUserFoods lists the user-authored foods.
func (srv *trackerService) GetUserFoods(ctx context.Context) ([]*entity.FoodItem, error) {
	var foods []*entity.FoodItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewFoodRepository().FindBySource(ctx, entity.SourceUser)
		if err != nil {
			return err
		}
		foods = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user foods")
	}

	return foods, nil
}

// recomputeDay restores the invariant that TotalPointsUsed equals the sum
// of the day's entry points, then refreshes the cumulative weekly overages
// of the whole week. The caller's pending WaterMl change is persisted along
// the way.
func (srv *trackerService) recomputeDay(ctx context.Context, repoFactory repository.RepositoryFactory, log *entity.DailyLog) error {
	entries, err := repoFactory.NewMealEntryRepository().FindByLog(ctx, log.ID)
	if err != nil {
		return errors.Wrap(err, "failed to load meal entries")
	}

	var total float64
	for _, entry := range entries {
		total += entry.Points
	}
	log.TotalPointsUsed = total

	if err := repoFactory.NewDailyLogRepository().Update(ctx, log); err != nil {
		return errors.Wrap(err, "failed to save daily log")
	}

	return srv.recomputeWeek(ctx, repoFactory, log.Date)
}

// recomputeWeek rewrites WeeklyPointsUsed for every log in the date's week
// as the running sum of daily budget overages from Monday onward. Without a
// profile there is no budget, so the cached values are left alone.
func (srv *trackerService) recomputeWeek(ctx context.Context, repoFactory repository.RepositoryFactory, date string) error {
	profile, err := repoFactory.NewProfileRepository().Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to load profile")
	}

	day, err := parseDate(date)
	if err != nil {
		return err
	}

	logRepo := repoFactory.NewDailyLogRepository()
	monday := startOfWeek(day)

	var cumulative float64

	for i := 0; i < 7; i++ {
		log, err := logRepo.FindByDate(ctx, formatDate(monday.AddDate(0, 0, i)))
		if err != nil {
			if errors.Is(err, repository.ErrDailyLogNotFound) {
				continue
			}

			return errors.Wrap(err, "failed to load daily log")
		}

		if overage := log.TotalPointsUsed - profile.DailyPointsBudget; overage > 0 {
			cumulative += overage
		}

		if log.WeeklyPointsUsed != cumulative {
			log.WeeklyPointsUsed = cumulative
			if err := logRepo.Update(ctx, log); err != nil {
				return errors.Wrap(err, "failed to save weekly totals")
			}
		}
	}

	return nil
}

func (srv *trackerService) pushDayIfActive(ctx context.Context, date string) {
	if identity, ok := srv.sessions.Current(); ok {
		srv.push.PushDay(ctx, identity.UserID, date)
	}
}

func (srv *trackerService) pushProfileIfActive(ctx context.Context, profile *entity.UserProfile) {
	if identity, ok := srv.sessions.Current(); ok {
		srv.push.PushProfile(ctx, identity.UserID, profile)
	}
}

func (srv *trackerService) pushFoodIfActive(ctx context.Context, food *entity.FoodItem) {
	if identity, ok := srv.sessions.Current(); ok {
		srv.push.PushFood(ctx, identity.UserID, food)
	}
}
