package impl

import (
	"context"
	"log/slog"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/domain/service"
	"bodybalance/internal/usecase"

	"github.com/pkg/errors"
)

// pullService implements the PullUsecase interface. It downloads every
// remote collection first, then applies the merge inside one local
// transaction so a partial failure leaves the local store untouched.
//
// Merge policies differ deliberately per collection. Profiles merge by
// updatedAt (last writer wins). Days are replaced wholesale when the remote
// copy holds meals; a meal-less remote day only contributes its water total.
// Weight entries and user foods are insert-only: an existing local record
// always wins, foods matching by case-insensitive name.
type pullService struct {
	remote    service.RemoteStore
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewPullService is the constructor for pullService.
func NewPullService(
	remote service.RemoteStore,
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.PullUsecase {
	return &pullService{
		remote:    remote,
		txManager: txManager,
		logger:    logger,
	}
}

// PullAll downloads all remote documents and merges them locally. It
// reports whether the remote store contained any data at all.
func (srv *pullService) PullAll(ctx context.Context, userID string) (bool, error) {
	srv.logger.Info("Starting pull", "userID", userID)

	remoteProfile, err := srv.remote.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, service.ErrDocumentNotFound) {
		return false, errors.Wrap(err, "failed to fetch remote profile")
	}

	days, err := srv.remote.ListDays(ctx, userID)
	if err != nil {
		return false, errors.Wrap(err, "failed to fetch remote days")
	}

	weights, err := srv.remote.ListWeights(ctx, userID)
	if err != nil {
		return false, errors.Wrap(err, "failed to fetch remote weights")
	}

	foods, err := srv.remote.ListFoods(ctx, userID)
	if err != nil {
		return false, errors.Wrap(err, "failed to fetch remote foods")
	}

	found := remoteProfile != nil || len(days) > 0 || len(weights) > 0 || len(foods) > 0
	if !found {
		srv.logger.Info("Pull finished: remote store is empty", "userID", userID)

		return false, nil
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if remoteProfile != nil {
			if err := srv.mergeProfile(ctx, repoFactory, remoteProfile); err != nil {
				return err
			}
		}

		if err := srv.mergeDays(ctx, repoFactory, days); err != nil {
			return err
		}

		if err := srv.mergeWeights(ctx, repoFactory, weights); err != nil {
			return err
		}

		return srv.mergeFoods(ctx, repoFactory, foods)
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to apply pulled data")
	}

	srv.logger.Info("Pull finished", "userID", userID, "days", len(days), "weights", len(weights), "foods", len(foods))

	return true, nil
}

// mergeProfile applies last-writer-wins on updatedAt. A remote document
// without a parsable updatedAt ranks as epoch and never beats a local
// profile. Local-only fields survive a remote win.
func (srv *pullService) mergeProfile(ctx context.Context, repoFactory repository.RepositoryFactory, doc *service.ProfileDocument) error {
	profileRepo := repoFactory.NewProfileRepository()

	local, err := profileRepo.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return errors.Wrap(err, "failed to load local profile")
	}

	incoming := documentToProfile(doc)

	if local != nil {
		if !incoming.UpdatedAt.After(local.UpdatedAt) {
			return nil
		}

		incoming.ID = local.ID
		incoming.AIAPIKey = local.AIAPIKey
	}

	if err := profileRepo.Save(ctx, incoming); err != nil {
		return errors.Wrap(err, "failed to save merged profile")
	}

	return nil
}

// mergeDays applies day documents. A remote day carrying meals replaces the
// local day wholesale, entries included. A remote day without meals only
// overwrites the water total of an already-existing local log.
func (srv *pullService) mergeDays(ctx context.Context, repoFactory repository.RepositoryFactory, days []*service.DayDocument) error {
	logRepo := repoFactory.NewDailyLogRepository()
	mealRepo := repoFactory.NewMealEntryRepository()

	for _, doc := range days {
		if len(doc.Meals) == 0 {
			local, err := logRepo.FindByDate(ctx, doc.Date)
			if err != nil {
				if errors.Is(err, repository.ErrDailyLogNotFound) {
					continue
				}

				return errors.Wrapf(err, "failed to load local day %s", doc.Date)
			}

			local.WaterMl = doc.WaterMl
			if err := logRepo.Update(ctx, local); err != nil {
				return errors.Wrapf(err, "failed to merge water for day %s", doc.Date)
			}

			continue
		}

		log, err := logRepo.GetOrCreate(ctx, doc.Date)
		if err != nil {
			return errors.Wrapf(err, "failed to prepare local day %s", doc.Date)
		}

		if err := mealRepo.DeleteByLog(ctx, log.ID); err != nil {
			return errors.Wrapf(err, "failed to clear local day %s", doc.Date)
		}

		for _, meal := range doc.Meals {
			if err := mealRepo.Create(ctx, documentToEntry(meal, log.ID)); err != nil {
				return errors.Wrapf(err, "failed to insert entry for day %s", doc.Date)
			}
		}

		log.TotalPointsUsed = doc.TotalPointsUsed
		log.WeeklyPointsUsed = doc.WeeklyPointsUsed
		log.WaterMl = doc.WaterMl

		if err := logRepo.Update(ctx, log); err != nil {
			return errors.Wrapf(err, "failed to save merged day %s", doc.Date)
		}
	}

	return nil
}

// mergeWeights inserts remote entries only for dates without a local entry.
func (srv *pullService) mergeWeights(ctx context.Context, repoFactory repository.RepositoryFactory, weights []*service.WeightDocument) error {
	weightRepo := repoFactory.NewWeightRepository()

	for _, doc := range weights {
		_, err := weightRepo.FindByDate(ctx, doc.Date)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrWeightNotFound) {
			return errors.Wrapf(err, "failed to check local weight %s", doc.Date)
		}

		if err := weightRepo.Upsert(ctx, documentToWeight(doc)); err != nil {
			return errors.Wrapf(err, "failed to insert weight %s", doc.Date)
		}
	}

	return nil
}

// mergeFoods inserts remote foods that have no local name match. Everything
// pulled from the foods collection is user-authored by construction, so the
// source is forced accordingly.
func (srv *pullService) mergeFoods(ctx context.Context, repoFactory repository.RepositoryFactory, foods []*service.FoodDocument) error {
	foodRepo := repoFactory.NewFoodRepository()

	for _, doc := range foods {
		_, err := foodRepo.FindByName(ctx, doc.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrFoodNotFound) {
			return errors.Wrapf(err, "failed to check local food %q", doc.Name)
		}

		food := documentToFood(doc)
		food.Source = entity.SourceUser

		if err := foodRepo.Create(ctx, food); err != nil {
			return errors.Wrapf(err, "failed to insert food %q", doc.Name)
		}
	}

	return nil
}
