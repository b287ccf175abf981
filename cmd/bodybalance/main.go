package main

import (
	"context"
	"log/slog"

	"bodybalance/config"
	"bodybalance/internal/domain/service"
	"bodybalance/internal/infra/auth"
	logs "bodybalance/internal/infra/log"
	"bodybalance/internal/infra/persistence/sqlite"
	"bodybalance/internal/infra/remote/firestore"
	"bodybalance/internal/infra/remote/memory"
	"bodybalance/internal/infra/session"
	"bodybalance/internal/usecase"
	"bodybalance/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(
			run,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewProfileRepository,
			sqlite.NewFoodRepository,
			sqlite.NewDailyLogRepository,
			sqlite.NewMealEntryRepository,
			sqlite.NewWeightRepository,
			sqlite.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newSessionController,
			newSessionProvider,
			newRemoteStore,
			newTokenVerifier,
		),
	)
}

func newSessionController() service.SessionController {
	return session.NewManager()
}

func newSessionProvider(controller service.SessionController) service.SessionProvider {
	return controller
}

// newRemoteStore picks the Firestore-backed store when a Firebase project
// is configured, and the in-memory stub otherwise so the tracker keeps
// working fully offline.
func newRemoteStore(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.RemoteStore, error) {
	if cfg.Firebase == nil {
		logger.Info("No firebase project configured, sync runs against an in-memory stub")

		return memory.New(), nil
	}

	store, err := firestore.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

func newTokenVerifier(ctx context.Context, cfg *config.Config) (service.TokenVerifier, error) {
	if cfg.Firebase == nil {
		return auth.NewDisabledVerifier(), nil
	}

	return auth.NewFirebaseVerifier(ctx, cfg)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDispatcher,
			impl.NewPushService,
			impl.NewPullService,
			impl.NewTrackerService,
			impl.NewReportsService,
			impl.NewPortabilityService,
			impl.NewSessionService,
		),
	)
}

type runParams struct {
	fx.In
	fx.Lifecycle

	Config     *config.Config
	Logger     *slog.Logger
	Dispatcher *impl.Dispatcher

	Tracker     usecase.TrackerUsecase
	Reports     usecase.ReportsUsecase
	Portability usecase.PortabilityUsecase
	Session     usecase.SessionUsecase
}

func run(params runParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			params.Logger.Info("bodybalance core started",
				slog.String("env", params.Config.Env.Env),
				slog.String("state", string(params.Session.State())),
			)

			return nil
		},
		OnStop: func(context.Context) error {
			// Let in-flight background pushes drain before the process exits.
			params.Dispatcher.Wait()
			params.Logger.Info("bodybalance core stopped")

			return nil
		},
	})
}
