package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "bloom/internal/adapters/out/postgres"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/upload"
	"bloom/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE upload_grants").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.UploadGrantRepository())
	suite.NotNil(uow2.UploadGrantRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Commit_Persists() {
	ctx := context.Background()
	uow := suite.factory.Create()
	grant := createTestGrant(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UploadGrantRepository().Add(ctx, grant))
	_, err := uow.UploadGrantRepository().Get(ctx, grant.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().UploadGrantRepository().Get(ctx, grant.ID())
	suite.Require().NoError(err)
	suite.Equal(grant.Key().String(), got.Key().String())
	suite.Equal([]kernel.UUID{grant.ID()},
		uow.(*postgres_adapter.GormUnitOfWork).TrackedAggregates())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback_Discards() {
	ctx := context.Background()
	uow := suite.factory.Create()
	grant := createTestGrant(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UploadGrantRepository().Add(ctx, grant))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().UploadGrantRepository().Get(ctx, grant.ID())
	suite.Require().Error(err, "Grant should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Isolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	grant1 := createTestGrant(suite)
	grant2 := createTestGrant(suite)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.UploadGrantRepository().Add(ctx, grant1))
	suite.Require().NoError(uow2.UploadGrantRepository().Add(ctx, grant2))

	_, err := uow1.UploadGrantRepository().Get(ctx, grant2.ID())
	suite.Require().Error(err, "UOW1 should not see grant2")
	_, err = uow2.UploadGrantRepository().Get(ctx, grant1.ID())
	suite.Require().Error(err, "UOW2 should not see grant1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	repo := suite.factory.Create().UploadGrantRepository()
	_, err = repo.Get(ctx, grant1.ID())
	suite.Require().NoError(err)
	_, err = repo.Get(ctx, grant2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	grant := createTestGrant(suite)

	suite.Require().NoError(suite.factory.Create().UploadGrantRepository().Add(ctx, grant))

	_, err := suite.factory.Create().UploadGrantRepository().Get(ctx, grant.ID())
	suite.Require().NoError(err)
}

func createTestGrant(suite *UnitOfWorkIntegrationTestSuite) *upload.Grant {
	key, err := upload.ParseObjectKey("orders/" + kernel.NewUUID().String() + "/" +
		kernel.NewUUID().String() + "/" + kernel.NewUUID().String() + ".webp")
	suite.Require().NoError(err)
	grant, err := upload.NewGrant(kernel.NewUUID(), key, "image/webp", time.Now(), time.Hour)
	suite.Require().NoError(err)
	return grant
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
