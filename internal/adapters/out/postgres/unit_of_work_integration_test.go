package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/adapters/out/postgres/productrepo"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.MigrateSales(db))
	suite.Require().NoError(postgres_adapter.MigrateDelivery(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, deliveries, products, order_events").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without transaction")
	suite.Require().Error(uow.Rollback(ctx), "rollback without transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersists() {
	ctx := context.Background()
	o := newOrder(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsEveryRepository() {
	ctx := context.Background()
	o := newOrder(suite)
	d, err := delivery.NewDelivery(kernel.NewUUID(), o.ID(), "u1", "p1", 1, time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(uow.Rollback(ctx))

	var orders, deliveries int64
	suite.Require().NoError(suite.db.Table("orders").Count(&orders).Error)
	suite.Require().NoError(suite.db.Table("deliveries").Count(&deliveries).Error)
	suite.Zero(orders)
	suite.Zero(deliveries)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStoreProbeAndCatalog() {
	ctx := context.Background()
	suite.Require().NoError(postgres_adapter.NewStoreProbe(suite.db).Ping(ctx))

	suite.Require().NoError(suite.db.Create(&productrepo.ProductDTO{ProductID: "p1", Name: "Widget", Quantity: 3}).Error)
	catalog := productrepo.NewGormProductCatalog(suite.db)

	ok, err := catalog.IsAvailable(ctx, "p1", kernel.Quantity(3))
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = catalog.IsAvailable(ctx, "p1", kernel.Quantity(4))
	suite.Require().NoError(err)
	suite.False(ok)

	ok, err = catalog.IsAvailable(ctx, "missing", kernel.Quantity(1))
	suite.Require().NoError(err)
	suite.False(ok)
}

func newOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "u1", "p1", 1, "", time.Now())
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
