package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/application/services"
	"github.com/DanielPopoola/cps-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/DanielPopoola/cps-gateway/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CallbackIntegrationTestSuite struct {
	suite.Suite
	testDB  *testhelpers.TestDatabase
	repo    *postgres.OrderRepository
	service *services.CallbackService
}

func TestCallbackIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	suite.Run(t, new(CallbackIntegrationTestSuite))
}

func (suite *CallbackIntegrationTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewOrderRepository(suite.testDB.DB)
	suite.service = services.NewCallbackService(
		testhelpers.StaticOrigin{"1.2.3.4", "5.6.7.8"},
		suite.repo,
		testhelpers.DefaultGatewayConfig(),
		discardLogger(),
	)
}

func (suite *CallbackIntegrationTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *CallbackIntegrationTestSuite) SetupTest() {
	suite.testDB.SeedOrder(suite.T(), testhelpers.PendingOrder())
}

func (suite *CallbackIntegrationTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *CallbackIntegrationTestSuite) handle(sourceIP, status, message string) services.ResponseDirective {
	return suite.service.Handle(context.Background(), services.CallbackRequest{
		Params:     testhelpers.CallbackParams("4521", status, message),
		SourceIP:   sourceIP,
		ReceivedAt: time.Now(),
	})
}

func (suite *CallbackIntegrationTestSuite) Test_Approved() {
	ctx := context.Background()
	t := suite.T()

	d := suite.handle("1.2.3.4", "approved", "")
	assert.Equal(t, receipt4521, d.Location)

	order, err := suite.repo.GetOrder(ctx, 4521)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, order.Status)
	assert.NotNil(t, order.PaidAt)

	notes, err := suite.repo.ListNotes(ctx, 4521)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Payment completed via Cornerstone.", notes[0].Body)
}

func (suite *CallbackIntegrationTestSuite) Test_Declined() {
	ctx := context.Background()
	t := suite.T()

	d := suite.handle("5.6.7.8", "declined", "insufficient funds")
	assert.Equal(t, receipt4521, d.Location)

	order, err := suite.repo.GetOrder(ctx, 4521)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, order.Status)

	notes, err := suite.repo.ListNotes(ctx, 4521)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Payment declined via Cornerstone. Message: insufficient funds.", notes[0].Body)
}

func (suite *CallbackIntegrationTestSuite) Test_Untrusted() {
	ctx := context.Background()
	t := suite.T()

	d := suite.handle("9.9.9.9", "approved", "")
	assert.True(t, d.Drop)

	order, err := suite.repo.GetOrder(ctx, 4521)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)

	notes, err := suite.repo.ListNotes(ctx, 4521)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func (suite *CallbackIntegrationTestSuite) Test_ConcurrentRedeliveriesPayOnce() {
	ctx := context.Background()
	t := suite.T()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suite.handle("1.2.3.4", "approved", "")
		}()
	}
	wg.Wait()

	notes, err := suite.repo.ListNotes(ctx, 4521)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}
