package cmd

import (
	"log/slog"
	"os"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/pdfinvoice"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters and application handlers together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	renderer   ports.InvoiceRenderer
	operator   commands.Actor

	platformAccountID     kernel.UUID
	commissionBasisPoints int64
	config                Config
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	platformAccountID, err := kernel.UUIDFromString(config.PlatformAccountID)
	if err != nil {
		return CompositionRoot{}, err
	}

	operator, err := commands.NewActor(platformAccountID, commands.RoleOperator)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:                gormDB,
		uowFactory:            *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:              notify.NewLogNotifier(log.New("dispatch")),
		renderer:              pdfinvoice.NewPDFRenderer("Dispatch"),
		operator:              operator,
		platformAccountID:     platformAccountID,
		commissionBasisPoints: config.CommissionBasisPoints,
		config:                config,
	}, nil
}

// Operator returns the platform operator identity used by background runs.
func (c *CompositionRoot) Operator() commands.Actor {
	return c.operator
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) availabilityUoWFactory() commands.AvailabilityUoWFactory {
	return FuncAvailabilityUoWFactory(func() commands.AvailabilityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) negotiationUoWFactory() commands.NegotiationUoWFactory {
	return FuncNegotiationUoWFactory(func() commands.NegotiationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreatePublishRequestCommandHandler() commands.PublishRequestCommandHandler {
	return commands.NewPublishRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	return commands.NewCancelRequestCommandHandler(c.negotiationUoWFactory())
}

func (c *CompositionRoot) CreateDeclareAvailabilityCommandHandler() commands.DeclareAvailabilityCommandHandler {
	return commands.NewDeclareAvailabilityCommandHandler(c.availabilityUoWFactory())
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	return commands.NewSubmitBidCommandHandler(c.negotiationUoWFactory())
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	return commands.NewAcceptBidCommandHandler(c.negotiationUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRejectBidCommandHandler() commands.RejectBidCommandHandler {
	return commands.NewRejectBidCommandHandler(c.negotiationUoWFactory())
}

func (c *CompositionRoot) CreateWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	return commands.NewWithdrawBidCommandHandler(c.negotiationUoWFactory())
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateHandoverAtRelayCommandHandler() commands.HandoverAtRelayCommandHandler {
	return commands.NewHandoverAtRelayCommandHandler(
		c.fulfillmentUoWFactory(), c.notifier, c.config.HandoverAckTimeout)
}

func (c *CompositionRoot) CreateAcknowledgePickupCommandHandler() commands.AcknowledgePickupCommandHandler {
	return commands.NewAcknowledgePickupCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateGenerateValidationCodeCommandHandler() commands.GenerateValidationCodeCommandHandler {
	return commands.NewGenerateValidationCodeCommandHandler(
		c.fulfillmentUoWFactory(), c.config.ValidationCodeTTL)
}

func (c *CompositionRoot) CreateValidateDeliveryCommandHandler() (commands.ValidateDeliveryCommandHandler, error) {
	return commands.NewValidateDeliveryCommandHandler(
		c.fulfillmentUoWFactory(), c.notifier, c.platformAccountID, c.commissionBasisPoints)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateRecordEarningCommandHandler() commands.RecordEarningCommandHandler {
	return commands.NewRecordEarningCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateRecordCommissionCommandHandler() commands.RecordCommissionCommandHandler {
	return commands.NewRecordCommissionCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateReverseEntryCommandHandler() commands.ReverseEntryCommandHandler {
	return commands.NewReverseEntryCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateCloseBillingPeriodCommandHandler() commands.CloseBillingPeriodCommandHandler {
	return commands.NewCloseBillingPeriodCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateIssueInvoiceCommandHandler() commands.IssueInvoiceCommandHandler {
	return commands.NewIssueInvoiceCommandHandler(c.ledgerUoWFactory(), c.renderer)
}

func (c *CompositionRoot) CreateSweepExpiredCommandHandler() commands.SweepExpiredCommandHandler {
	return commands.NewSweepExpiredCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetCandidatesQueryHandler() queries.GetCandidatesQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetCandidatesQueryHandler(
		uow.RequestRepository(),
		uow.AvailabilityRepository(),
		uow.CourierRepository(),
		services.NewMatcher(services.DefaultMatchingPolicy()),
	)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBalanceQueryHandler() queries.GetBalanceQueryHandler {
	return queries.NewGetBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBillingPeriodQueryHandler() queries.GetBillingPeriodQueryHandler {
	return queries.NewGetBillingPeriodQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnsettledPartiesQueryHandler() queries.GetUnsettledPartiesQueryHandler {
	return queries.NewGetUnsettledPartiesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNextInvoiceSequenceQueryHandler() queries.GetNextInvoiceSequenceQueryHandler {
	return queries.NewGetNextInvoiceSequenceQueryHandler(c.gormDB)
}

// CreateHTTPHandlers bundles every handler the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() (httpin.Handlers, error) {
	validateDelivery, err := c.CreateValidateDeliveryCommandHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}

	return httpin.Handlers{
		CreateRequest:          c.CreateCreateRequestCommandHandler(),
		PublishRequest:         c.CreatePublishRequestCommandHandler(),
		CancelRequest:          c.CreateCancelRequestCommandHandler(),
		DeclareAvailability:    c.CreateDeclareAvailabilityCommandHandler(),
		SubmitBid:              c.CreateSubmitBidCommandHandler(),
		AcceptBid:              c.CreateAcceptBidCommandHandler(),
		RejectBid:              c.CreateRejectBidCommandHandler(),
		WithdrawBid:            c.CreateWithdrawBidCommandHandler(),
		StartTransit:           c.CreateStartTransitCommandHandler(),
		HandoverAtRelay:        c.CreateHandoverAtRelayCommandHandler(),
		AcknowledgePickup:      c.CreateAcknowledgePickupCommandHandler(),
		GenerateValidationCode: c.CreateGenerateValidationCodeCommandHandler(),
		ValidateDelivery:       validateDelivery,
		CancelDelivery:         c.CreateCancelDeliveryCommandHandler(),
		RecordEarning:          c.CreateRecordEarningCommandHandler(),
		RecordCommission:       c.CreateRecordCommissionCommandHandler(),
		ReverseEntry:           c.CreateReverseEntryCommandHandler(),
		CloseBillingPeriod:     c.CreateCloseBillingPeriodCommandHandler(),
		IssueInvoice:           c.CreateIssueInvoiceCommandHandler(),

		GetCandidates:    c.CreateGetCandidatesQueryHandler(),
		GetDelivery:      c.CreateGetDeliveryQueryHandler(),
		GetBalance:       c.CreateGetBalanceQueryHandler(),
		GetBillingPeriod: c.CreateGetBillingPeriodQueryHandler(),
	}, nil
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return jobs.NewJobManager(
		c.CreateSweepExpiredCommandHandler(),
		c.CreateGetUnsettledPartiesQueryHandler(),
		c.CreateGetNextInvoiceSequenceQueryHandler(),
		c.CreateCloseBillingPeriodCommandHandler(),
		c.CreateIssueInvoiceCommandHandler(),
		c.operator,
		logger,
	)
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncAvailabilityUoWFactory func() commands.AvailabilityUoW

func (f FuncAvailabilityUoWFactory) Create() commands.AvailabilityUoW {
	return f()
}

type FuncNegotiationUoWFactory func() commands.NegotiationUoW

func (f FuncNegotiationUoWFactory) Create() commands.NegotiationUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
