package scrapemonitorservice

import (
	"log/slog"
	"time"

	httpadapter "dttracker/contexts/scrape-ops/scrape-monitor-service/adapters/http"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/adapters/memory"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/application/commands"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/application/queries"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Jobs            ports.JobRepository
	Runs            ports.RunRepository
	Clock           ports.Clock
	IDGenerator     ports.IDGenerator
	CooldownInitial time.Duration
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	registerJob := commands.RegisterJobUseCase{
		Jobs:   deps.Jobs,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	retryJobs := commands.RetryJobsUseCase{
		Jobs:   deps.Jobs,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	startRun := commands.StartRunUseCase{
		Jobs:   deps.Jobs,
		Runs:   deps.Runs,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	finishRun := commands.FinishRunUseCase{
		Jobs:            deps.Jobs,
		Runs:            deps.Runs,
		Clock:           deps.Clock,
		CooldownInitial: deps.CooldownInitial,
		Logger:          deps.Logger,
	}

	listJobs := queries.ListJobsUseCase{
		Jobs:   deps.Jobs,
		Logger: deps.Logger,
	}
	listRuns := queries.ListRunsUseCase{
		Runs:   deps.Runs,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	runSummary := queries.RunSummaryUseCase{
		Runs:   deps.Runs,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			RegisterJob: registerJob,
			RetryJobs:   retryJobs,
			StartRun:    startRun,
			FinishRun:   finishRun,
			ListJobs:    listJobs,
			ListRuns:    listRuns,
			RunSummary:  runSummary,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.ScrapeJob, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Jobs:        store,
		Runs:        store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
