package activationservice

import (
	"log/slog"
	"time"

	httpadapter "dttracker/contexts/creator-marketing/activation-service/adapters/http"
	"dttracker/contexts/creator-marketing/activation-service/adapters/memory"
	"dttracker/contexts/creator-marketing/activation-service/application"
	"dttracker/contexts/creator-marketing/activation-service/application/commands"
	"dttracker/contexts/creator-marketing/activation-service/application/queries"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Activations    ports.ActivationRepository
	Invitations    ports.InvitationRepository
	Wallet         ports.WalletGateway
	Outbox         ports.OutboxWriter
	Idempotency    ports.IdempotencyStore
	Notifications  ports.NotificationRepository
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	inflight := application.NewInflightRegistry()

	createActivation := commands.CreateActivationUseCase{
		Activations:    deps.Activations,
		Invitations:    deps.Invitations,
		Idempotency:    deps.Idempotency,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGenerator,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}
	createInvitations := commands.CreateInvitationsUseCase{
		Activations:    deps.Activations,
		Invitations:    deps.Invitations,
		Idempotency:    deps.Idempotency,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGenerator,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}
	acceptInvitation := commands.AcceptInvitationUseCase{
		Invitations: deps.Invitations,
		Activations: deps.Activations,
		Wallet:      deps.Wallet,
		Outbox:      deps.Outbox,
		Inflight:    inflight,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	declineInvitation := commands.DeclineInvitationUseCase{
		Invitations: deps.Invitations,
		Inflight:    inflight,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	releasePayment := commands.ReleasePaymentUseCase{
		Invitations: deps.Invitations,
		Activations: deps.Activations,
		Wallet:      deps.Wallet,
		Outbox:      deps.Outbox,
		Inflight:    inflight,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	cancelInvitation := commands.CancelInvitationUseCase{
		Invitations: deps.Invitations,
		Activations: deps.Activations,
		Wallet:      deps.Wallet,
		Outbox:      deps.Outbox,
		Inflight:    inflight,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	changeStatus := commands.ChangeActivationStatusUseCase{
		Activations: deps.Activations,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}

	getActivation := queries.GetActivationUseCase{
		Activations: deps.Activations,
		Logger:      deps.Logger,
	}
	listActivations := queries.ListActivationsUseCase{
		Activations: deps.Activations,
		Logger:      deps.Logger,
	}
	listByActivation := queries.ListInvitationsByActivationUseCase{
		Invitations: deps.Invitations,
		Logger:      deps.Logger,
	}
	listByCreator := queries.ListInvitationsByCreatorUseCase{
		Invitations: deps.Invitations,
		Logger:      deps.Logger,
	}
	budgetSummary := queries.BudgetSummaryUseCase{
		Activations: deps.Activations,
		Invitations: deps.Invitations,
		Logger:      deps.Logger,
	}
	listNotifications := queries.ListNotificationsUseCase{
		Notifications: deps.Notifications,
		Logger:        deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateActivation:  createActivation,
			CreateInvitations: createInvitations,
			AcceptInvitation:  acceptInvitation,
			DeclineInvitation: declineInvitation,
			ReleasePayment:    releasePayment,
			CancelInvitation:  cancelInvitation,
			ChangeStatus:      changeStatus,
			GetActivation:     getActivation,
			ListActivations:   listActivations,
			ListByActivation:  listByActivation,
			ListByCreator:     listByCreator,
			BudgetSummary:     budgetSummary,
			ListNotifications: listNotifications,
			Logger:            deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Activation, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Activations:    store,
		Invitations:    store,
		Wallet:         store,
		Outbox:         store,
		Idempotency:    store,
		Notifications:  store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
