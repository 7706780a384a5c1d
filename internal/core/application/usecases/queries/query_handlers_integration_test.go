package queries_test

import (
	"context"
	"testing"
	"time"

	"grocery/internal/adapters/out/postgres/agentrepo"
	"grocery/internal/adapters/out/postgres/orderrepo"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersIntegrationTestSuite exercises the raw-SQL read side against
// rows seeded through the persistence DTOs.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&agentrepo.AgentDTO{},
	))
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items, agents").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ReturnsDetailWithItems() {
	ctx := context.Background()

	agentID := uuid.New()
	confirmedAt := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	dto := orderrepo.OrderDTO{
		ID:              uuid.New(),
		Number:          "ORD-20260828-0101",
		CustomerID:      uuid.New(),
		AddressID:       uuid.New(),
		Subtotal:        15000,
		DeliveryFee:     2000,
		PaymentMethod:   "upi",
		Status:          string(order.StatusConfirmed),
		AssignedAgentID: &agentID,
		ConfirmedAt:     &confirmedAt,
		Items: []orderrepo.OrderItemDTO{
			{ProductID: uuid.New(), ProductName: "Milk", Quantity: 1, UnitPrice: 3000, Subtotal: 3000},
			{ProductID: uuid.New(), ProductName: "Apples", Quantity: 2, UnitPrice: 6000, Subtotal: 12000},
		},
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	orderID, err := kernel.UUIDFromBytes(dto.ID[:])
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderQuery(orderID)
	suite.Require().NoError(err)

	resp, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("ORD-20260828-0101", resp.Number)
	suite.Equal(int64(15000), resp.Subtotal)
	suite.Equal(int64(2000), resp.DeliveryFee)
	suite.Equal(int64(17000), resp.Total)
	suite.Equal(string(order.StatusConfirmed), resp.Status)
	suite.Require().NotNil(resp.AssignedAgentID)
	suite.Equal(agentID.String(), resp.AssignedAgentID.String())
	suite.Require().NotNil(resp.ConfirmedAt)
	suite.Nil(resp.DeliveredAt)

	// Items come back sorted by product name.
	suite.Require().Len(resp.Items, 2)
	suite.Equal("Apples", resp.Items[0].ProductName)
	suite.Equal(2, resp.Items[0].Quantity)
	suite.Equal(int64(12000), resp.Items[0].Subtotal)
	suite.Equal("Milk", resp.Items[1].ProductName)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetActiveOrders_ExcludesTerminalStatuses() {
	ctx := context.Background()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	suite.seedOrderRow("ORD-20260828-0201", order.StatusOutForDelivery, base.Add(2*time.Minute))
	suite.seedOrderRow("ORD-20260828-0200", order.StatusPending, base)
	suite.seedOrderRow("ORD-20260828-0202", order.StatusDelivered, base.Add(3*time.Minute))
	suite.seedOrderRow("ORD-20260828-0203", order.StatusCancelled, base.Add(4*time.Minute))

	rows, err := queries.NewGetActiveOrdersQueryHandler(suite.db).
		Handle(ctx, queries.NewGetActiveOrdersQuery())
	suite.Require().NoError(err)

	// Terminal orders are filtered, the rest come back oldest first.
	suite.Require().Len(rows, 2)
	suite.Equal("ORD-20260828-0200", rows[0].Number)
	suite.Equal(string(order.StatusPending), rows[0].Status)
	suite.Equal(int64(17000), rows[0].Total)
	suite.Equal("ORD-20260828-0201", rows[1].Number)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllAgents_SortedByNameIncludingInactive() {
	ctx := context.Background()

	lastAssigned := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.db.Create(&agentrepo.AgentDTO{
		ID: uuid.New(), Name: "Ravi", Phone: "+911234567890", Active: true, LastAssignedAt: &lastAssigned,
	}).Error)
	suite.Require().NoError(suite.db.Create(&agentrepo.AgentDTO{
		ID: uuid.New(), Name: "Meena", Phone: "+919876543210", Active: false,
	}).Error)

	agents, err := queries.NewGetAllAgentsQueryHandler(suite.db).
		Handle(ctx, queries.NewGetAllAgentsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(agents, 2)
	suite.Equal("Meena", agents[0].Name)
	suite.False(agents[0].Active)
	suite.Nil(agents[0].LastAssignedAt)
	suite.Equal("Ravi", agents[1].Name)
	suite.Require().NotNil(agents[1].LastAssignedAt)
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrderRow(number string, status order.Status, createdAt time.Time) {
	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID:            uuid.New(),
		Number:        number,
		CustomerID:    uuid.New(),
		AddressID:     uuid.New(),
		Subtotal:      15000,
		DeliveryFee:   2000,
		PaymentMethod: "cash",
		Status:        string(status),
		CreatedAt:     createdAt,
	}).Error)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}

func TestGetOrderQuery_RequiresValidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestQueries_RejectZeroValue(t *testing.T) {
	var getOrder queries.GetOrderQuery
	require.ErrorIs(t, getOrder.Validate(), queries.ErrGetOrderQueryIsNotConstructed)

	var active queries.GetActiveOrdersQuery
	require.ErrorIs(t, active.Validate(), queries.ErrGetActiveOrdersQueryIsNotConstructed)

	var agents queries.GetAllAgentsQuery
	require.ErrorIs(t, agents.Validate(), queries.ErrGetAllAgentsQueryIsNotConstructed)
}
