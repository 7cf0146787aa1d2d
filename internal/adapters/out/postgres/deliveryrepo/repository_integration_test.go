package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DeliveryRepositoryIntegrationTestSuite exercises the delivery repository,
// including the leg chain and tracking trail round-trip, against a real
// PostgreSQL database.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *deliveryrepo.GormDeliveryRepository
}

// noopTracker satisfies the aggregate tracker without recording anything.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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
	)
	suite.Require().NoError(err)

	suite.repo = deliveryrepo.NewGormDeliveryRepository(db, noopTracker{})
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE deliveries, delivery_legs, tracking_events`).Error
	suite.Require().NoError(err)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	aggregate := suite.createAssignedDelivery()

	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	stored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(stored.IsEqual(aggregate))
	suite.True(stored.RequestID().IsEqual(aggregate.RequestID()))
	suite.True(stored.HolderID().IsEqual(aggregate.HolderID()))
	suite.Equal(delivery.Assigned, stored.Status())
	suite.Equal(aggregate.Pickup().Address(), stored.Pickup().Address())
	suite.Equal(aggregate.Drop().Address(), stored.Drop().Address())
	suite.Empty(stored.Legs())
	suite.Require().Len(stored.Tracking(), 1)
	suite.Equal(delivery.Assigned, stored.Tracking()[0].Status())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsLegsAndPendingHandover() {
	ctx := context.Background()

	aggregate := suite.createAssignedDelivery()
	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	start := time.Now().UTC().Truncate(time.Second)
	err = aggregate.StartTransit(aggregate.HolderID(), start)
	suite.Require().NoError(err)

	nextCourierID := kernel.NewUUID()
	relay, err := kernel.NewGeoPoint(47.3220, 5.0415, "Relay point, Dijon")
	suite.Require().NoError(err)
	err = aggregate.HandoverAtRelay(
		aggregate.HolderID(), nextCourierID, relay,
		start.Add(time.Hour), delivery.DefaultHandoverTimeout)
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, aggregate)
	suite.Require().NoError(err)

	stored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(delivery.AtRelay, stored.Status())

	suite.Require().Len(stored.Legs(), 1)
	leg := stored.Legs()[0]
	suite.True(leg.IsOpen())
	suite.True(leg.HolderID().IsEqual(aggregate.HolderID()))
	suite.Equal(aggregate.Pickup().Address(), leg.From().Address())

	pending := stored.PendingHandover()
	suite.Require().NotNil(pending)
	suite.True(pending.NextCourierID().IsEqual(nextCourierID))
	suite.Equal("Relay point, Dijon", pending.RelayPoint().Address())

	suite.Require().Len(stored.Tracking(), 3)
	suite.Equal(delivery.InTransit, stored.Tracking()[1].Status())
	suite.Equal(delivery.AtRelay, stored.Tracking()[2].Status())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsAcknowledgedChainAndCode() {
	ctx := context.Background()

	aggregate := suite.createAssignedDelivery()
	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	start := time.Now().UTC().Truncate(time.Second)
	firstHolder := aggregate.HolderID()
	nextCourierID := kernel.NewUUID()
	relay, err := kernel.NewGeoPoint(47.3220, 5.0415, "Relay point, Dijon")
	suite.Require().NoError(err)

	suite.Require().NoError(aggregate.StartTransit(firstHolder, start))
	suite.Require().NoError(aggregate.HandoverAtRelay(
		firstHolder, nextCourierID, relay, start.Add(time.Hour), delivery.DefaultHandoverTimeout))
	suite.Require().NoError(aggregate.AcknowledgePickup(nextCourierID, start.Add(90*time.Minute)))

	code, err := aggregate.GenerateValidationCode(start.Add(2*time.Hour), delivery.DefaultCodeTTL)
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, aggregate)
	suite.Require().NoError(err)

	stored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(delivery.InTransit, stored.Status())
	suite.True(stored.HolderID().IsEqual(nextCourierID))
	suite.Equal(1, stored.AcknowledgedHandovers())
	suite.Nil(stored.PendingHandover())

	suite.Require().Len(stored.Legs(), 2)
	suite.False(stored.Legs()[0].IsOpen())
	suite.Equal("Relay point, Dijon", stored.Legs()[0].To().Address())
	suite.True(stored.Legs()[1].IsOpen())
	suite.True(stored.Legs()[1].HolderID().IsEqual(nextCourierID))

	suite.Require().NotNil(stored.ValidationCode())
	suite.True(stored.ValidationCode().Matches(code))
	suite.Equal(1, stored.ValidationCode().LegIndex())

	// the restored aggregate accepts the code and completes
	err = stored.ConfirmDelivery(code, start.Add(3*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(delivery.Delivered, stored.Status())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_VersionConflict() {
	ctx := context.Background()

	aggregate := suite.createAssignedDelivery()
	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	firstCopy, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	secondCopy, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	at := time.Now().UTC()
	suite.Require().NoError(firstCopy.StartTransit(firstCopy.HolderID(), at))
	suite.Require().NoError(suite.repo.Update(ctx, firstCopy))

	suite.Require().NoError(secondCopy.Cancel("requester changed plans", at))
	err = suite.repo.Update(ctx, secondCopy)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByRequest() {
	ctx := context.Background()

	aggregate := suite.createAssignedDelivery()
	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	stored, err := suite.repo.GetByRequest(ctx, aggregate.RequestID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(aggregate))

	_, err = suite.repo.GetByRequest(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAllUnresolved_ExcludesTerminal() {
	ctx := context.Background()
	at := time.Now().UTC()

	assigned := suite.createAssignedDelivery()
	suite.Require().NoError(suite.repo.Add(ctx, assigned))

	inTransit := suite.createAssignedDelivery()
	suite.Require().NoError(inTransit.StartTransit(inTransit.HolderID(), at))
	suite.Require().NoError(suite.repo.Add(ctx, inTransit))

	cancelled := suite.createAssignedDelivery()
	suite.Require().NoError(cancelled.Cancel("no longer needed", at))
	suite.Require().NoError(suite.repo.Add(ctx, cancelled))

	unresolved, err := suite.repo.GetAllUnresolved(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(unresolved, 2)

	ids := make(map[string]bool, len(unresolved))
	for _, d := range unresolved {
		ids[d.ID().String()] = true
	}
	suite.True(ids[assigned.ID().String()])
	suite.True(ids[inTransit.ID().String()])
	suite.False(ids[cancelled.ID().String()])
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createAssignedDelivery() *delivery.Delivery {
	pickup, err := kernel.NewGeoPoint(48.8566, 2.3522, "1 Rue de Rivoli, Paris")
	suite.Require().NoError(err)
	drop, err := kernel.NewGeoPoint(45.7640, 4.8357, "10 Rue de la Re, Lyon")
	suite.Require().NoError(err)

	aggregate, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		pickup, drop, time.Now().UTC().Truncate(time.Second))
	suite.Require().NoError(err)
	return aggregate
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
