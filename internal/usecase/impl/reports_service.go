package impl

import (
	"context"
	"log/slog"
	"time"

	"bodybalance/config"
	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/usecase"

	"github.com/pkg/errors"
)

const fallbackWaterGoalMl = 2000

// reportsService implements the ReportsUsecase interface. All reports read
// the local store only; remote data never feeds a report directly.
type reportsService struct {
	txManager repository.TransactionManager
	cfg       *config.Config
	logger    *slog.Logger
}

// NewReportsService is the constructor for reportsService.
func NewReportsService(
	txManager repository.TransactionManager,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ReportsUsecase {
	return &reportsService{
		txManager: txManager,
		cfg:       cfg,
		logger:    logger,
	}
}

// WeeklyPointsUsed sums the daily budget overages from the Monday of the
// date's week through the date itself.
func (srv *reportsService) WeeklyPointsUsed(ctx context.Context, date string) (float64, error) {
	day, err := parseDate(date)
	if err != nil {
		return 0, err
	}

	var total float64

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.NewProfileRepository().Get(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load profile")
		}

		logRepo := repoFactory.NewDailyLogRepository()

		for cursor := startOfWeek(day); !cursor.After(day); cursor = cursor.AddDate(0, 0, 1) {
			log, err := logRepo.FindByDate(ctx, formatDate(cursor))
			if err != nil {
				if errors.Is(err, repository.ErrDailyLogNotFound) {
					continue
				}

				return errors.Wrap(err, "failed to load daily log")
			}

			if overage := log.TotalPointsUsed - profile.DailyPointsBudget; overage > 0 {
				total += overage
			}
		}

		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to compute weekly points")
	}

	return total, nil
}

// GetWeekSummary summarizes the completed Monday-to-Sunday week preceding
// the date's week.
func (srv *reportsService) GetWeekSummary(ctx context.Context, date string) (*usecase.WeekSummary, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	monday := startOfWeek(day).AddDate(0, 0, -7)
	sunday := monday.AddDate(0, 0, 6)

	summary := &usecase.WeekSummary{
		StartDate: formatDate(monday),
		EndDate:   formatDate(sunday),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var (
			dailyBudget float64
			waterGoal   = fallbackWaterGoalMl
		)

		profile, err := repoFactory.NewProfileRepository().Get(ctx)
		switch {
		case errors.Is(err, repository.ErrProfileNotFound):
			if srv.cfg.Sync != nil && srv.cfg.Sync.WaterGoalMl > 0 {
				waterGoal = srv.cfg.Sync.WaterGoalMl
			}
		case err != nil:
			return errors.Wrap(err, "failed to load profile")
		default:
			dailyBudget = profile.DailyPointsBudget
			if profile.WaterGoalMl > 0 {
				waterGoal = profile.WaterGoalMl
			}
		}

		logRepo := repoFactory.NewDailyLogRepository()
		mealRepo := repoFactory.NewMealEntryRepository()

		var (
			loggedDays  int
			totalPoints float64
			bestPoints  float64
		)

		for i := 0; i < 7; i++ {
			cursor := formatDate(monday.AddDate(0, 0, i))
			daySummary := usecase.DaySummary{Date: cursor}

			log, err := logRepo.FindByDate(ctx, cursor)
			switch {
			case errors.Is(err, repository.ErrDailyLogNotFound):
				// Leave the zero-valued summary in place.
			case err != nil:
				return errors.Wrap(err, "failed to load daily log")
			default:
				entries, err := mealRepo.FindByLog(ctx, log.ID)
				if err != nil {
					return errors.Wrap(err, "failed to load meal entries")
				}

				daySummary.PointsUsed = log.TotalPointsUsed
				daySummary.WaterMl = log.WaterMl
				daySummary.HasEntries = len(entries) > 0
				daySummary.WithinBudget = daySummary.HasEntries && log.TotalPointsUsed <= dailyBudget

				if daySummary.WithinBudget {
					summary.DaysWithinBudget++
				}
				if log.WaterMl >= waterGoal {
					summary.WaterGoalDays++
				}
				if overage := log.TotalPointsUsed - dailyBudget; overage > 0 {
					summary.WeeklyOverage += overage
				}

				if daySummary.HasEntries {
					loggedDays++
					totalPoints += log.TotalPointsUsed

					if summary.BestDay == "" || log.TotalPointsUsed < bestPoints {
						summary.BestDay = cursor
						bestPoints = log.TotalPointsUsed
					}
				}
			}

			summary.Days = append(summary.Days, daySummary)
		}

		if loggedDays > 0 {
			summary.AvgPointsUsed = totalPoints / float64(loggedDays)
		}

		return srv.weightChange(ctx, repoFactory, monday, sunday, summary)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build week summary")
	}

	return summary, nil
}

// weightChange sets the difference between the last and first measurement
// inside the week, when at least two exist.
func (srv *reportsService) weightChange(ctx context.Context, repoFactory repository.RepositoryFactory, monday, sunday time.Time, summary *usecase.WeekSummary) error {
	all, err := repoFactory.NewWeightRepository().All(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load weight entries")
	}

	start, end := formatDate(monday), formatDate(sunday)

	var inWeek []*entity.WeightEntry
	for _, entry := range all {
		if entry.Date >= start && entry.Date <= end {
			inWeek = append(inWeek, entry)
		}
	}

	if len(inWeek) < 2 {
		return nil
	}

	change := inWeek[len(inWeek)-1].WeightKg - inWeek[0].WeightKg
	summary.WeightChangeKg = &change

	return nil
}

// GetStreak counts consecutive in-budget days with at least one entry,
// walking back from the date, or from the day before when the date itself
// has nothing logged yet.
func (srv *reportsService) GetStreak(ctx context.Context, date string) (int, error) {
	day, err := parseDate(date)
	if err != nil {
		return 0, err
	}

	var streak int

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.NewProfileRepository().Get(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load profile")
		}

		logRepo := repoFactory.NewDailyLogRepository()
		mealRepo := repoFactory.NewMealEntryRepository()

		qualifies := func(cursor time.Time) (bool, error) {
			log, err := logRepo.FindByDate(ctx, formatDate(cursor))
			if err != nil {
				if errors.Is(err, repository.ErrDailyLogNotFound) {
					return false, nil
				}

				return false, errors.Wrap(err, "failed to load daily log")
			}

			entries, err := mealRepo.FindByLog(ctx, log.ID)
			if err != nil {
				return false, errors.Wrap(err, "failed to load meal entries")
			}

			return len(entries) > 0 && log.TotalPointsUsed <= profile.DailyPointsBudget, nil
		}

		cursor := day

		ok, err := qualifies(cursor)
		if err != nil {
			return err
		}
		if !ok {
			// The current day may simply not be logged yet.
			cursor = cursor.AddDate(0, 0, -1)
		}

		for {
			ok, err := qualifies(cursor)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			streak++
			cursor = cursor.AddDate(0, 0, -1)
		}
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to compute streak")
	}

	return streak, nil
}
