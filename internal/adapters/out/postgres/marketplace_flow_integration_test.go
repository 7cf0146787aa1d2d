package postgres_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/pdfinvoice"
	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/bidrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/adapters/out/postgres/requestrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const flowCommissionBasisPoints = 1500

// MarketplaceFlowIntegrationTestSuite drives the full lifecycle through the
// real command handlers over PostgreSQL: publish, bid, accept, fulfill,
// validate, settle, bill and invoice.
type MarketplaceFlowIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	notifier  ports.Notifier

	platformID kernel.UUID
	operator   commands.Actor
}

func (suite *MarketplaceFlowIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&requestrepo.RequestDTO{},
		&bidrepo.BidDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.LegDTO{},
		&deliveryrepo.TrackingEventDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.AvailabilityDTO{},
		&ledgerrepo.EntryDTO{},
		&ledgerrepo.PeriodDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.notifier = notify.NewLogNotifier(log.New("flow-test"))

	suite.platformID = kernel.NewUUID()
	suite.operator, err = commands.NewActor(suite.platformID, commands.RoleOperator)
	suite.Require().NoError(err)
}

func (suite *MarketplaceFlowIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE
		requests, bids, deliveries, delivery_legs, tracking_events,
		couriers, availabilities, ledger_entries, billing_periods`).Error
	suite.Require().NoError(err)
}

func (suite *MarketplaceFlowIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestFullLifecycle walks one parcel from posted request to paid invoice.
func (suite *MarketplaceFlowIntegrationTestSuite) TestFullLifecycle() {
	ctx := context.Background()

	requester := suite.newActor(commands.RoleRequester)
	courierActor := suite.newActor(commands.RoleCourier)

	// post and publish the request
	requestID := kernel.NewUUID()
	createCmd, err := commands.NewCreateRequestCommand(
		requester, requestID,
		suite.geoPoint(48.8566, 2.3522, "1 Rue de Rivoli, Paris"),
		suite.geoPoint(45.7640, 4.8357, "10 Rue de la Re, Lyon"),
		suite.window(), suite.packageSpec(), suite.money(4500))
	suite.Require().NoError(err)

	createHandler := commands.NewCreateRequestCommandHandler(suite.requestUoWFactory())
	suite.Require().NoError(createHandler.Handle(ctx, createCmd))

	publishCmd, err := commands.NewPublishRequestCommand(requester, requestID)
	suite.Require().NoError(err)
	publishHandler := commands.NewPublishRequestCommandHandler(suite.requestUoWFactory())
	suite.Require().NoError(publishHandler.Handle(ctx, publishCmd))

	// the courier bids and the requester accepts
	bidID := kernel.NewUUID()
	bidCmd, err := commands.NewSubmitBidCommand(courierActor, bidID, requestID, suite.money(4200))
	suite.Require().NoError(err)
	bidHandler := commands.NewSubmitBidCommandHandler(suite.negotiationUoWFactory())
	suite.Require().NoError(bidHandler.Handle(ctx, bidCmd))

	deliveryID := kernel.NewUUID()
	acceptCmd, err := commands.NewAcceptBidCommand(requester, bidID, deliveryID)
	suite.Require().NoError(err)
	acceptHandler := commands.NewAcceptBidCommandHandler(suite.negotiationUoWFactory(), suite.notifier)
	suite.Require().NoError(acceptHandler.Handle(ctx, acceptCmd))

	created, err := suite.factory.Create().DeliveryRepository().Get(ctx, deliveryID)
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, created.Status())
	suite.True(created.HolderID().IsEqual(courierActor.ID()))

	// fulfillment: transit, code, confirmation
	startCmd, err := commands.NewStartTransitCommand(courierActor, deliveryID)
	suite.Require().NoError(err)
	startHandler := commands.NewStartTransitCommandHandler(suite.fulfillmentUoWFactory())
	suite.Require().NoError(startHandler.Handle(ctx, startCmd))

	codeCmd, err := commands.NewGenerateValidationCodeCommand(courierActor, deliveryID)
	suite.Require().NoError(err)
	codeHandler := commands.NewGenerateValidationCodeCommandHandler(
		suite.fulfillmentUoWFactory(), delivery.DefaultCodeTTL)
	code, err := codeHandler.Handle(ctx, codeCmd)
	suite.Require().NoError(err)
	suite.Require().Len(code, 6)

	validateCmd, err := commands.NewValidateDeliveryCommand(courierActor, deliveryID, code)
	suite.Require().NoError(err)
	validateHandler, err := commands.NewValidateDeliveryCommandHandler(
		suite.fulfillmentUoWFactory(), suite.notifier,
		suite.platformID, flowCommissionBasisPoints)
	suite.Require().NoError(err)
	suite.Require().NoError(validateHandler.Handle(ctx, validateCmd))

	delivered, err := suite.factory.Create().DeliveryRepository().Get(ctx, deliveryID)
	suite.Require().NoError(err)
	suite.Equal(delivery.Delivered, delivered.Status())

	// settlement: 15% commission on the 4500 price, remainder to the courier
	ledgerRepo := suite.factory.Create().LedgerRepository()
	cutoff := time.Now().UTC().Add(time.Hour)

	earnings, err := ledgerRepo.GetUnsettledByParty(ctx, courierActor.ID(), cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(earnings, 1)
	suite.Equal(int64(3825), earnings[0].Amount().Cents())
	suite.Equal(ledger.Earning, earnings[0].Kind())

	commissions, err := ledgerRepo.GetUnsettledByParty(ctx, suite.platformID, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(commissions, 1)
	suite.Equal(int64(675), commissions[0].Amount().Cents())
	suite.Equal(ledger.Commission, commissions[0].Kind())

	// confirming again changes nothing in the ledger
	suite.Require().Error(validateHandler.Handle(ctx, validateCmd))
	earnings, err = ledgerRepo.GetUnsettledByParty(ctx, courierActor.ID(), cutoff)
	suite.Require().NoError(err)
	suite.Len(earnings, 1)

	// billing: close the courier's period and issue the invoice
	closeCmd, err := commands.NewCloseBillingPeriodCommand(
		suite.operator, kernel.NewUUID(), courierActor.ID(),
		time.Now().UTC().Add(-30*24*time.Hour), cutoff)
	suite.Require().NoError(err)
	closeHandler := commands.NewCloseBillingPeriodCommandHandler(suite.ledgerUoWFactory())
	period, err := closeHandler.Handle(ctx, closeCmd)
	suite.Require().NoError(err)
	suite.Equal(ledger.PeriodClosed, period.Status())

	invoiceCmd, err := commands.NewIssueInvoiceCommand(suite.operator, period.ID(), 1)
	suite.Require().NoError(err)
	invoiceHandler := commands.NewIssueInvoiceCommandHandler(
		suite.ledgerUoWFactory(), pdfinvoice.NewPDFRenderer("Dispatch"))
	document, err := invoiceHandler.Handle(ctx, invoiceCmd)
	suite.Require().NoError(err)
	suite.True(bytes.HasPrefix(document, []byte("%PDF")))

	invoiced, err := suite.factory.Create().LedgerRepository().GetPeriod(ctx, period.ID())
	suite.Require().NoError(err)
	suite.Equal(ledger.PeriodInvoiced, invoiced.Status())
	suite.NotEmpty(invoiced.InvoiceRef())

	// the settled entry no longer counts as unsettled
	earnings, err = suite.factory.Create().LedgerRepository().
		GetUnsettledByParty(ctx, courierActor.ID(), cutoff)
	suite.Require().NoError(err)
	suite.Empty(earnings)
}

// TestRelayLifecycle walks a parcel through competing bids and a relay
// handover: two couriers bid, the requester picks the pricier one, custody
// passes to a second courier mid-route, and settlement pays every holder.
func (suite *MarketplaceFlowIntegrationTestSuite) TestRelayLifecycle() {
	ctx := context.Background()

	requester := suite.newActor(commands.RoleRequester)
	firstCourier := suite.newActor(commands.RoleCourier)
	cheaperCourier := suite.newActor(commands.RoleCourier)
	relayCourier := suite.newActor(commands.RoleCourier)

	requestID := kernel.NewUUID()
	createCmd, err := commands.NewCreateRequestCommand(
		requester, requestID,
		suite.geoPoint(48.8566, 2.3522, "1 Rue de Rivoli, Paris"),
		suite.geoPoint(45.7640, 4.8357, "10 Rue de la Re, Lyon"),
		suite.window(), suite.packageSpec(), suite.money(4500))
	suite.Require().NoError(err)
	suite.Require().NoError(
		commands.NewCreateRequestCommandHandler(suite.requestUoWFactory()).Handle(ctx, createCmd))

	publishCmd, err := commands.NewPublishRequestCommand(requester, requestID)
	suite.Require().NoError(err)
	suite.Require().NoError(
		commands.NewPublishRequestCommandHandler(suite.requestUoWFactory()).Handle(ctx, publishCmd))

	// two competing bids
	bidHandler := commands.NewSubmitBidCommandHandler(suite.negotiationUoWFactory())

	winningBidID := kernel.NewUUID()
	winningBidCmd, err := commands.NewSubmitBidCommand(
		firstCourier, winningBidID, requestID, suite.money(4200))
	suite.Require().NoError(err)
	suite.Require().NoError(bidHandler.Handle(ctx, winningBidCmd))

	cheaperBidID := kernel.NewUUID()
	cheaperBidCmd, err := commands.NewSubmitBidCommand(
		cheaperCourier, cheaperBidID, requestID, suite.money(3900))
	suite.Require().NoError(err)
	suite.Require().NoError(bidHandler.Handle(ctx, cheaperBidCmd))

	// the requester is free to prefer the pricier bid; the other one is
	// rejected in the same transaction
	deliveryID := kernel.NewUUID()
	acceptCmd, err := commands.NewAcceptBidCommand(requester, winningBidID, deliveryID)
	suite.Require().NoError(err)
	acceptHandler := commands.NewAcceptBidCommandHandler(suite.negotiationUoWFactory(), suite.notifier)
	suite.Require().NoError(acceptHandler.Handle(ctx, acceptCmd))

	losingBid, err := suite.factory.Create().BidRepository().Get(ctx, cheaperBidID)
	suite.Require().NoError(err)
	suite.Equal(bid.Rejected, losingBid.Status())

	matched, err := suite.factory.Create().RequestRepository().Get(ctx, requestID)
	suite.Require().NoError(err)
	suite.Equal(request.Matched, matched.Status())

	// first courier starts the route, then hands over at a relay point
	startCmd, err := commands.NewStartTransitCommand(firstCourier, deliveryID)
	suite.Require().NoError(err)
	suite.Require().NoError(
		commands.NewStartTransitCommandHandler(suite.fulfillmentUoWFactory()).Handle(ctx, startCmd))

	handoverCmd, err := commands.NewHandoverAtRelayCommand(
		firstCourier, deliveryID, relayCourier.ID(),
		suite.geoPoint(47.3220, 5.0415, "Relay point, Dijon"))
	suite.Require().NoError(err)
	handoverHandler := commands.NewHandoverAtRelayCommandHandler(
		suite.fulfillmentUoWFactory(), suite.notifier, delivery.DefaultHandoverTimeout)
	suite.Require().NoError(handoverHandler.Handle(ctx, handoverCmd))

	ackCmd, err := commands.NewAcknowledgePickupCommand(relayCourier, deliveryID)
	suite.Require().NoError(err)
	suite.Require().NoError(
		commands.NewAcknowledgePickupCommandHandler(suite.fulfillmentUoWFactory()).Handle(ctx, ackCmd))

	inTransit, err := suite.factory.Create().DeliveryRepository().Get(ctx, deliveryID)
	suite.Require().NoError(err)
	suite.Require().Len(inTransit.Legs(), 2)
	suite.True(inTransit.Legs()[0].HolderID().IsEqual(firstCourier.ID()))
	suite.True(inTransit.Legs()[1].HolderID().IsEqual(relayCourier.ID()))
	suite.True(inTransit.HolderID().IsEqual(relayCourier.ID()))

	// the relay courier generates the code and confirms at the door
	codeCmd, err := commands.NewGenerateValidationCodeCommand(relayCourier, deliveryID)
	suite.Require().NoError(err)
	codeHandler := commands.NewGenerateValidationCodeCommandHandler(
		suite.fulfillmentUoWFactory(), delivery.DefaultCodeTTL)
	code, err := codeHandler.Handle(ctx, codeCmd)
	suite.Require().NoError(err)

	validateCmd, err := commands.NewValidateDeliveryCommand(relayCourier, deliveryID, code)
	suite.Require().NoError(err)
	validateHandler, err := commands.NewValidateDeliveryCommandHandler(
		suite.fulfillmentUoWFactory(), suite.notifier,
		suite.platformID, flowCommissionBasisPoints)
	suite.Require().NoError(err)
	suite.Require().NoError(validateHandler.Handle(ctx, validateCmd))

	// settlement on the 4500 request price: 675 commission, the courier
	// share split across both holders with the remainder on the last leg
	ledgerRepo := suite.factory.Create().LedgerRepository()
	cutoff := time.Now().UTC().Add(time.Hour)

	firstEarnings, err := ledgerRepo.GetUnsettledByParty(ctx, firstCourier.ID(), cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(firstEarnings, 1)
	suite.Equal(int64(1912), firstEarnings[0].Amount().Cents())
	suite.Equal(ledger.Earning, firstEarnings[0].Kind())

	relayEarnings, err := ledgerRepo.GetUnsettledByParty(ctx, relayCourier.ID(), cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(relayEarnings, 1)
	suite.Equal(int64(1913), relayEarnings[0].Amount().Cents())

	commissions, err := ledgerRepo.GetUnsettledByParty(ctx, suite.platformID, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(commissions, 1)
	suite.Equal(int64(675), commissions[0].Amount().Cents())

	// the courier who lost the bid earned nothing
	loserEarnings, err := ledgerRepo.GetUnsettledByParty(ctx, cheaperCourier.ID(), cutoff)
	suite.Require().NoError(err)
	suite.Empty(loserEarnings)

	completed, err := suite.factory.Create().RequestRepository().Get(ctx, requestID)
	suite.Require().NoError(err)
	suite.Equal(request.Completed, completed.Status())
}

func (suite *MarketplaceFlowIntegrationTestSuite) newActor(role commands.Role) commands.Actor {
	actor, err := commands.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return actor
}

func (suite *MarketplaceFlowIntegrationTestSuite) geoPoint(lat, lon float64, address string) kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lon, address)
	suite.Require().NoError(err)
	return point
}

func (suite *MarketplaceFlowIntegrationTestSuite) window() kernel.TimeWindow {
	from := time.Now().UTC().Truncate(time.Second)
	window, err := kernel.NewTimeWindow(from, from.Add(8*time.Hour))
	suite.Require().NoError(err)
	return window
}

func (suite *MarketplaceFlowIntegrationTestSuite) packageSpec() request.PackageSpec {
	pack, err := request.NewPackageSpec(1200, false, false)
	suite.Require().NoError(err)
	return pack
}

func (suite *MarketplaceFlowIntegrationTestSuite) money(cents int64) kernel.Money {
	amount, err := kernel.NewMoney(cents, kernel.DefaultCurrency)
	suite.Require().NoError(err)
	return amount
}

func (suite *MarketplaceFlowIntegrationTestSuite) requestUoWFactory() commands.RequestUoWFactory {
	return requestUoWFactoryFunc(func() commands.RequestUoW { return suite.factory.Create() })
}

func (suite *MarketplaceFlowIntegrationTestSuite) negotiationUoWFactory() commands.NegotiationUoWFactory {
	return negotiationUoWFactoryFunc(func() commands.NegotiationUoW { return suite.factory.Create() })
}

func (suite *MarketplaceFlowIntegrationTestSuite) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return fulfillmentUoWFactoryFunc(func() commands.FulfillmentUoW { return suite.factory.Create() })
}

func (suite *MarketplaceFlowIntegrationTestSuite) ledgerUoWFactory() commands.LedgerUoWFactory {
	return ledgerUoWFactoryFunc(func() commands.LedgerUoW { return suite.factory.Create() })
}

type requestUoWFactoryFunc func() commands.RequestUoW

func (f requestUoWFactoryFunc) Create() commands.RequestUoW { return f() }

type negotiationUoWFactoryFunc func() commands.NegotiationUoW

func (f negotiationUoWFactoryFunc) Create() commands.NegotiationUoW { return f() }

type fulfillmentUoWFactoryFunc func() commands.FulfillmentUoW

func (f fulfillmentUoWFactoryFunc) Create() commands.FulfillmentUoW { return f() }

type ledgerUoWFactoryFunc func() commands.LedgerUoW

func (f ledgerUoWFactoryFunc) Create() commands.LedgerUoW { return f() }

func TestMarketplaceFlowIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceFlowIntegrationTestSuite))
}
