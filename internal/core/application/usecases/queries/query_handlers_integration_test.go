package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersIntegrationTestSuite exercises the SQL projection handlers
// against a real PostgreSQL database, seeded through the write-side
// repositories.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	deliveryRepo *deliveryrepo.GormDeliveryRepository
	ledgerRepo   *ledgerrepo.GormLedgerRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.LegDTO{},
		&deliveryrepo.TrackingEventDTO{},
		&ledgerrepo.EntryDTO{},
		&ledgerrepo.PeriodDTO{},
	)
	suite.Require().NoError(err)

	suite.deliveryRepo = deliveryrepo.NewGormDeliveryRepository(db, mockAggregateTracker{})
	suite.ledgerRepo = ledgerrepo.NewGormLedgerRepository(db, mockAggregateTracker{})
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE
		deliveries, delivery_legs, tracking_events, ledger_entries, billing_periods`).Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetDelivery_ProjectsChainAndTracking() {
	ctx := context.Background()

	pickup, err := kernel.NewGeoPoint(48.8566, 2.3522, "1 Rue de Rivoli, Paris")
	suite.Require().NoError(err)
	drop, err := kernel.NewGeoPoint(45.7640, 4.8357, "10 Rue de la Re, Lyon")
	suite.Require().NoError(err)
	relay, err := kernel.NewGeoPoint(47.3220, 5.0415, "Relay point, Dijon")
	suite.Require().NoError(err)

	start := time.Now().UTC().Truncate(time.Second)
	firstCourier := kernel.NewUUID()
	secondCourier := kernel.NewUUID()

	aggregate, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), firstCourier, pickup, drop, start)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.StartTransit(firstCourier, start.Add(time.Minute)))
	suite.Require().NoError(aggregate.HandoverAtRelay(
		firstCourier, secondCourier, relay, start.Add(time.Hour), delivery.DefaultHandoverTimeout))
	suite.Require().NoError(aggregate.AcknowledgePickup(secondCourier, start.Add(90*time.Minute)))
	suite.Require().NoError(suite.deliveryRepo.Add(ctx, aggregate))

	query, err := queries.NewGetDeliveryQuery(aggregate.ID())
	suite.Require().NoError(err)

	handler := queries.NewGetDeliveryQueryHandler(suite.db)
	projection, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(projection.ID.IsEqual(aggregate.ID()))
	suite.True(projection.HolderID.IsEqual(secondCourier))
	suite.Equal("InTransit", projection.Status)

	suite.Require().Len(projection.Legs, 2)
	suite.True(projection.Legs[0].HolderID.IsEqual(firstCourier))
	suite.Equal("Relay point, Dijon", projection.Legs[0].ToAddress)
	suite.NotNil(projection.Legs[0].EndedAt)
	suite.True(projection.Legs[1].HolderID.IsEqual(secondCourier))
	suite.Nil(projection.Legs[1].EndedAt)

	suite.Require().Len(projection.Tracking, 4)
	suite.Equal("Assigned", projection.Tracking[0].Status)
	suite.Equal("InTransit", projection.Tracking[3].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetDelivery_NotFound() {
	query, err := queries.NewGetDeliveryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	handler := queries.NewGetDeliveryQueryHandler(suite.db)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetBalance_ExcludesInvoicedPeriods() {
	ctx := context.Background()
	partyID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Second)

	suite.addEntry(ctx, partyID, 4050, ledger.Earning, now.Add(-72*time.Hour))
	suite.addEntry(ctx, partyID, -500, ledger.Adjustment, now.Add(-48*time.Hour))

	// a paid-out entry must not count toward the open balance
	paidOut := suite.addEntry(ctx, partyID, 9900, ledger.Earning, now.Add(-40*24*time.Hour))
	suite.attachToInvoicedPeriod(ctx, partyID, paidOut, now)

	query, err := queries.NewGetBalanceQuery(partyID)
	suite.Require().NoError(err)

	handler := queries.NewGetBalanceQueryHandler(suite.db)
	balance, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(int64(3550), balance.Balance.Cents())
	suite.Equal(2, balance.EntryCount)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetBalance_NoActivity() {
	query, err := queries.NewGetBalanceQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	handler := queries.NewGetBalanceQueryHandler(suite.db)
	balance, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(0), balance.Balance.Cents())
	suite.Equal(0, balance.EntryCount)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetBillingPeriod_ProjectsEntriesAndTotal() {
	ctx := context.Background()
	partyID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Second)

	first := suite.addEntry(ctx, partyID, 4050, ledger.Earning, now.Add(-72*time.Hour))
	second := suite.addEntry(ctx, partyID, 2200, ledger.Earning, now.Add(-48*time.Hour))

	periodStart := now.AddDate(0, -1, 0)
	period, err := ledger.NewBillingPeriod(kernel.NewUUID(), partyID, periodStart, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledgerRepo.AddPeriod(ctx, period))

	for _, entry := range []*ledger.Entry{first, second} {
		suite.Require().NoError(entry.AttachToPeriod(period.ID()))
		suite.Require().NoError(suite.ledgerRepo.UpdateEntry(ctx, entry))
	}

	query, err := queries.NewGetBillingPeriodQuery(period.ID())
	suite.Require().NoError(err)

	handler := queries.NewGetBillingPeriodQueryHandler(suite.db)
	projection, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(projection.PartyID.IsEqual(partyID))
	suite.Equal("Open", projection.Status)
	suite.Equal(int64(6250), projection.Total.Cents())

	suite.Require().Len(projection.Entries, 2)
	suite.True(projection.Entries[0].ID.IsEqual(first.ID()))
	suite.Equal("Earning", projection.Entries[0].Kind)
	suite.Equal(int64(2200), projection.Entries[1].Amount.Cents())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetUnsettledParties() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	firstParty := kernel.NewUUID()
	secondParty := kernel.NewUUID()
	settledParty := kernel.NewUUID()

	suite.addEntry(ctx, firstParty, 4050, ledger.Earning, now.Add(-72*time.Hour))
	suite.addEntry(ctx, secondParty, 1800, ledger.Earning, now.Add(-24*time.Hour))

	settled := suite.addEntry(ctx, settledParty, 7700, ledger.Earning, now.Add(-40*24*time.Hour))
	suite.attachToInvoicedPeriod(ctx, settledParty, settled, now)

	handler := queries.NewGetUnsettledPartiesQueryHandler(suite.db)
	parties, err := handler.Handle(ctx, queries.NewGetUnsettledPartiesQuery())
	suite.Require().NoError(err)

	suite.Require().Len(parties, 2)
	found := make(map[string]bool, len(parties))
	for _, partyID := range parties {
		found[partyID.String()] = true
	}
	suite.True(found[firstParty.String()])
	suite.True(found[secondParty.String()])
	suite.False(found[settledParty.String()])
}

// TestGetNextInvoiceSequence verifies the billing run picks up a month's
// numbering where the last run left off rather than restarting at 1.
func (suite *QueryHandlersIntegrationTestSuite) TestGetNextInvoiceSequence() {
	ctx := context.Background()
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	handler := queries.NewGetNextInvoiceSequenceQueryHandler(suite.db)

	query, err := queries.NewGetNextInvoiceSequenceQuery(end)
	suite.Require().NoError(err)

	sequence, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(1, sequence)

	// two invoices issued for June, one for May
	suite.addInvoicedPeriod(ctx, end, 1)
	suite.addInvoicedPeriod(ctx, end, 2)
	suite.addInvoicedPeriod(ctx, end.AddDate(0, -1, 0), 1)

	sequence, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(3, sequence)
}

func (suite *QueryHandlersIntegrationTestSuite) addInvoicedPeriod(
	ctx context.Context,
	end time.Time,
	sequence int,
) {
	period, err := ledger.NewBillingPeriod(
		kernel.NewUUID(), kernel.NewUUID(), end.AddDate(0, -1, 0), end)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledgerRepo.AddPeriod(ctx, period))

	suite.Require().NoError(period.Close())
	suite.Require().NoError(period.MarkInvoiced(ledger.InvoiceRef(end, sequence)))
	suite.Require().NoError(suite.ledgerRepo.UpdatePeriod(ctx, period))
}

func (suite *QueryHandlersIntegrationTestSuite) addEntry(
	ctx context.Context,
	partyID kernel.UUID,
	cents int64,
	kind ledger.Kind,
	at time.Time,
) *ledger.Entry {
	amount, err := kernel.NewMoney(cents, kernel.DefaultCurrency)
	suite.Require().NoError(err)

	entry, err := ledger.NewEntry(kernel.NewUUID(), kernel.NewUUID(), partyID, amount, kind, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledgerRepo.AddEntry(ctx, entry))
	return entry
}

func (suite *QueryHandlersIntegrationTestSuite) attachToInvoicedPeriod(
	ctx context.Context,
	partyID kernel.UUID,
	entry *ledger.Entry,
	now time.Time,
) {
	period, err := ledger.NewBillingPeriod(
		kernel.NewUUID(), partyID, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledgerRepo.AddPeriod(ctx, period))

	suite.Require().NoError(entry.AttachToPeriod(period.ID()))
	suite.Require().NoError(suite.ledgerRepo.UpdateEntry(ctx, entry))

	suite.Require().NoError(period.Close())
	suite.Require().NoError(period.MarkInvoiced(ledger.InvoiceRef(period.End(), 1)))
	suite.Require().NoError(suite.ledgerRepo.UpdatePeriod(ctx, period))
}

// mockAggregateTracker satisfies the repositories' tracker dependency.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
