package impl

import (
	"context"
	"log/slog"
	"time"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/domain/service"
	"bodybalance/internal/usecase"

	"github.com/pkg/errors"
)

// pushService implements the PushUsecase interface. Single-item pushes are
// dispatched to detached goroutines; a remote failure never reaches the
// mutation that triggered it.
type pushService struct {
	remote     service.RemoteStore
	dispatcher *Dispatcher
	profiles   repository.ProfileRepository
	logs       repository.DailyLogRepository
	meals      repository.MealEntryRepository
	weights    repository.WeightRepository
	foods      repository.FoodRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewPushService is the constructor for pushService.
func NewPushService(
	remote service.RemoteStore,
	dispatcher *Dispatcher,
	profiles repository.ProfileRepository,
	logs repository.DailyLogRepository,
	meals repository.MealEntryRepository,
	weights repository.WeightRepository,
	foods repository.FoodRepository,
	logger *slog.Logger,
) usecase.PushUsecase {
	return &pushService{
		remote:     remote,
		dispatcher: dispatcher,
		profiles:   profiles,
		logs:       logs,
		meals:      meals,
		weights:    weights,
		foods:      foods,
		logger:     logger,
		now:        time.Now,
	}
}

// PushProfile uploads the profile document.
func (srv *pushService) PushProfile(ctx context.Context, userID string, profile *entity.UserProfile) {
	doc := profileToDocument(profile, srv.now())

	srv.dispatcher.Go(ctx, "push profile", func(ctx context.Context) error {
		return srv.remote.SetProfile(ctx, userID, doc)
	})
}

// PushDay uploads the full day document for a date.
func (srv *pushService) PushDay(ctx context.Context, userID, date string) {
	srv.dispatcher.Go(ctx, "push day "+date, func(ctx context.Context) error {
		return srv.pushDay(ctx, userID, date)
	})
}

func (srv *pushService) pushDay(ctx context.Context, userID, date string) error {
	log, err := srv.logs.FindByDate(ctx, date)
	if err != nil {
		if errors.Is(err, repository.ErrDailyLogNotFound) {
			// Nothing logged locally for this date yet.
			return nil
		}

		return errors.Wrap(err, "failed to load daily log")
	}

	entries, err := srv.meals.FindByLog(ctx, log.ID)
	if err != nil {
		return errors.Wrap(err, "failed to load meal entries")
	}

	return srv.remote.SetDay(ctx, userID, date, dayToDocument(log, entries, srv.now()))
}

// PushWeight uploads the weight document for the entry's date.
func (srv *pushService) PushWeight(ctx context.Context, userID string, entry *entity.WeightEntry) {
	doc := weightToDocument(entry, srv.now())

	srv.dispatcher.Go(ctx, "push weight "+entry.Date, func(ctx context.Context) error {
		return srv.remote.SetWeight(ctx, userID, doc.Date, doc)
	})
}

// DeleteWeight removes the remote weight document for a date.
func (srv *pushService) DeleteWeight(ctx context.Context, userID, date string) {
	srv.dispatcher.Go(ctx, "delete weight "+date, func(ctx context.Context) error {
		return srv.remote.DeleteWeight(ctx, userID, date)
	})
}

// PushFood uploads a user-authored food. Foods from external catalogs and
// unsaved foods are skipped.
func (srv *pushService) PushFood(ctx context.Context, userID string, food *entity.FoodItem) {
	if food.Source != entity.SourceUser || food.ID == 0 {
		return
	}

	localID := food.ID
	doc := foodToDocument(food, srv.now())

	srv.dispatcher.Go(ctx, "push food "+food.Name, func(ctx context.Context) error {
		return srv.remote.SetFood(ctx, userID, localID, doc)
	})
}

// PushAll uploads everything, sequentially. Each remote write is
// independently failure-tolerant; one rejected document never stops the
// rest. Only local read failures are returned.
func (srv *pushService) PushAll(ctx context.Context, userID string) error {
	srv.logger.Info("Starting bulk upload", "userID", userID)

	profile, err := srv.profiles.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		// No onboarded profile yet; push the rest anyway.
	case err != nil:
		return errors.Wrap(err, "failed to load profile")
	default:
		if setErr := srv.remote.SetProfile(ctx, userID, profileToDocument(profile, srv.now())); setErr != nil {
			srv.logger.Warn("Bulk upload: profile push failed", "error", setErr)
		}
	}

	logs, err := srv.logs.All(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load daily logs")
	}

	for _, log := range logs {
		entries, err := srv.meals.FindByLog(ctx, log.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load meal entries")
		}

		if setErr := srv.remote.SetDay(ctx, userID, log.Date, dayToDocument(log, entries, srv.now())); setErr != nil {
			srv.logger.Warn("Bulk upload: day push failed", "date", log.Date, "error", setErr)
		}
	}

	weights, err := srv.weights.All(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load weight entries")
	}

	for _, entry := range weights {
		if setErr := srv.remote.SetWeight(ctx, userID, entry.Date, weightToDocument(entry, srv.now())); setErr != nil {
			srv.logger.Warn("Bulk upload: weight push failed", "date", entry.Date, "error", setErr)
		}
	}

	foods, err := srv.foods.FindBySource(ctx, entity.SourceUser)
	if err != nil {
		return errors.Wrap(err, "failed to load user foods")
	}

	for _, food := range foods {
		if setErr := srv.remote.SetFood(ctx, userID, food.ID, foodToDocument(food, srv.now())); setErr != nil {
			srv.logger.Warn("Bulk upload: food push failed", "food", food.Name, "error", setErr)
		}
	}

	srv.logger.Info("Bulk upload finished", "userID", userID, "days", len(logs), "weights", len(weights), "foods", len(foods))

	return nil
}
