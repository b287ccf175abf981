package impl

import (
	"context"
	"log/slog"
	"time"

	"bodybalance/internal/domain/repository"
	"bodybalance/internal/domain/service"
	"bodybalance/internal/usecase"

	"github.com/pkg/errors"
)

const exportVersion = 1

// portabilityService implements the PortabilityUsecase interface. Export
// and import both run inside a single transaction, so an export is a
// consistent snapshot and a failed import leaves the previous data intact.
type portabilityService struct {
	txManager  repository.TransactionManager
	sessions   service.SessionProvider
	push       usecase.PushUsecase
	dispatcher *Dispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewPortabilityService is the constructor for portabilityService.
func NewPortabilityService(
	txManager repository.TransactionManager,
	sessions service.SessionProvider,
	push usecase.PushUsecase,
	dispatcher *Dispatcher,
	logger *slog.Logger,
) usecase.PortabilityUsecase {
	return &portabilityService{
		txManager:  txManager,
		sessions:   sessions,
		push:       push,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Export reads every collection into a snapshot.
func (srv *portabilityService) Export(ctx context.Context) (*usecase.ExportSnapshot, error) {
	snap := &usecase.ExportSnapshot{
		Version:    exportVersion,
		ExportedAt: formatTimestamp(srv.now()),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.NewProfileRepository().Get(ctx)
		if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			return errors.Wrap(err, "failed to load profile")
		}
		snap.Profile = profile

		snap.Foods, err = repoFactory.NewFoodRepository().All(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load foods")
		}

		logs, err := repoFactory.NewDailyLogRepository().All(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load daily logs")
		}

		mealRepo := repoFactory.NewMealEntryRepository()
		for _, log := range logs {
			entries, err := mealRepo.FindByLog(ctx, log.ID)
			if err != nil {
				return errors.Wrap(err, "failed to load meal entries")
			}

			snap.Days = append(snap.Days, &usecase.DayExport{Log: log, Entries: entries})
		}

		snap.Weights, err = repoFactory.NewWeightRepository().All(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load weight entries")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to export data")
	}

	srv.logger.Info("Export finished", "days", len(snap.Days), "foods", len(snap.Foods), "weights", len(snap.Weights))

	return snap, nil
}

// Import wipes the local store and restores the snapshot. Local keys are
// reassigned on insert; entries are re-linked to their restored logs by
// date. When a session is active the restored data is reconciled upward in
// the background.
func (srv *portabilityService) Import(ctx context.Context, snap *usecase.ExportSnapshot) error {
	if snap == nil {
		return errors.New("snapshot is required")
	}
	if snap.Version > exportVersion {
		return errors.Errorf("unsupported snapshot version %d", snap.Version)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()
		foodRepo := repoFactory.NewFoodRepository()
		logRepo := repoFactory.NewDailyLogRepository()
		mealRepo := repoFactory.NewMealEntryRepository()
		weightRepo := repoFactory.NewWeightRepository()

		if err := mealRepo.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "failed to clear meal entries")
		}
		if err := logRepo.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "failed to clear daily logs")
		}
		if err := weightRepo.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "failed to clear weight entries")
		}
		if err := foodRepo.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "failed to clear foods")
		}
		if err := profileRepo.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "failed to clear profile")
		}

		if snap.Profile != nil {
			profile := *snap.Profile
			profile.ID = 0
			if err := profileRepo.Save(ctx, &profile); err != nil {
				return errors.Wrap(err, "failed to restore profile")
			}
		}

		for _, food := range snap.Foods {
			restored := *food
			restored.ID = 0
			if err := foodRepo.Create(ctx, &restored); err != nil {
				return errors.Wrapf(err, "failed to restore food %q", food.Name)
			}
		}

		for _, day := range snap.Days {
			if day == nil || day.Log == nil {
				continue
			}

			log, err := logRepo.GetOrCreate(ctx, day.Log.Date)
			if err != nil {
				return errors.Wrapf(err, "failed to restore day %s", day.Log.Date)
			}

			log.TotalPointsUsed = day.Log.TotalPointsUsed
			log.WeeklyPointsUsed = day.Log.WeeklyPointsUsed
			log.WaterMl = day.Log.WaterMl

			if err := logRepo.Update(ctx, log); err != nil {
				return errors.Wrapf(err, "failed to restore day %s", day.Log.Date)
			}

			for _, entry := range day.Entries {
				restored := *entry
				restored.ID = 0
				restored.DailyLogID = log.ID

				if err := mealRepo.Create(ctx, &restored); err != nil {
					return errors.Wrapf(err, "failed to restore entry for day %s", day.Log.Date)
				}
			}
		}

		for _, weight := range snap.Weights {
			restored := *weight
			restored.ID = 0
			if err := weightRepo.Upsert(ctx, &restored); err != nil {
				return errors.Wrapf(err, "failed to restore weight %s", weight.Date)
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to import data")
	}

	srv.logger.Info("Import finished", "days", len(snap.Days), "foods", len(snap.Foods), "weights", len(snap.Weights))

	if identity, ok := srv.sessions.Current(); ok {
		srv.dispatcher.Go(ctx, "push after import", func(ctx context.Context) error {
			return srv.push.PushAll(ctx, identity.UserID)
		})
	}

	return nil
}
