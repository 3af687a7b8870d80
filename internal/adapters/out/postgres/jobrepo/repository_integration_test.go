package jobrepo_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"courierbridge/internal/adapters/out/postgres/jobrepo"
	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ReservationStoreIntegrationTestSuite runs the store against a real PostgreSQL.
type ReservationStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	mu    sync.Mutex
	clock time.Time
	store *jobrepo.GormReservationStore
}

func (suite *ReservationStoreIntegrationTestSuite) now() time.Time {
	suite.mu.Lock()
	defer suite.mu.Unlock()
	return suite.clock
}

func (suite *ReservationStoreIntegrationTestSuite) advance(d time.Duration) {
	suite.mu.Lock()
	suite.clock = suite.clock.Add(d)
	suite.mu.Unlock()
}

func (suite *ReservationStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(jobrepo.AutoMigrate(db))
}

func (suite *ReservationStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReservationStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_reservations").Error)
	suite.clock = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	suite.store = jobrepo.NewGormReservationStore(suite.db, 10*time.Minute, suite.now)
}

func (suite *ReservationStoreIntegrationTestSuite) TestTryReserve_ExactlyOneWinner() {
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := suite.store.TryReserve(ctx, "order:1")
			suite.NoError(err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(1), wins.Load())
}

func (suite *ReservationStoreIntegrationTestSuite) TestRecordAndLookup() {
	ctx := context.Background()

	ok, err := suite.store.TryReserve(ctx, "order:1")
	suite.Require().NoError(err)
	suite.Require().True(ok)

	j, err := job.NewDeliveryJob("order:1",
		booking.Confirmation{DeliveryID: "d-1", TrackingURL: "https://t/1", TrackingCode: "T1"},
		suite.now().Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Record(ctx, j))

	res, err := suite.store.Lookup(ctx, "order:1")
	suite.Require().NoError(err)
	suite.Equal(job.StatusCommitted, res.Status)
	suite.True(suite.now().Equal(res.ReservedAt))
	suite.Require().NotNil(res.Job)
	suite.Equal(j.ID(), res.Job.ID())
	suite.Equal("d-1", res.Job.DeliveryID())
	suite.Equal("T1", res.Job.TrackingCode())

	suite.advance(time.Hour)
	ok, err = suite.store.TryReserve(ctx, "order:1")
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *ReservationStoreIntegrationTestSuite) TestStalePendingIsReclaimed() {
	ctx := context.Background()

	ok, _ := suite.store.TryReserve(ctx, "order:1")
	suite.Require().True(ok)

	suite.advance(5 * time.Minute)
	ok, _ = suite.store.TryReserve(ctx, "order:1")
	suite.False(ok)

	suite.advance(5 * time.Minute)
	ok, err := suite.store.TryReserve(ctx, "order:1")
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *ReservationStoreIntegrationTestSuite) TestReleaseAndExpire() {
	ctx := context.Background()

	_, _ = suite.store.TryReserve(ctx, "order:1")
	suite.Require().NoError(suite.store.Release(ctx, "order:1"))
	_, err := suite.store.Lookup(ctx, "order:1")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, _ = suite.store.TryReserve(ctx, "order:old")
	suite.advance(20 * time.Minute)
	_, _ = suite.store.TryReserve(ctx, "order:new")

	n, err := suite.store.ExpirePending(ctx, suite.now().Add(-10*time.Minute))
	suite.Require().NoError(err)
	suite.Equal(1, n)
	_, err = suite.store.Lookup(ctx, "order:new")
	suite.NoError(err)
}

func TestReservationStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	suite.Run(t, new(ReservationStoreIntegrationTestSuite))
}
