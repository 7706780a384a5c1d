package cmd

import (
	"log/slog"

	httpin "grocery/internal/adapters/in/http"
	"grocery/internal/adapters/out/kafka"
	"grocery/internal/adapters/out/postgres"
	"grocery/internal/adapters/out/postgres/customerviews"
	redisout "grocery/internal/adapters/out/redis"
	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
	"grocery/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires the application graph: one unit-of-work factory over
// the shared GORM connection, the outbound collaborators, and the command and
// query handlers built on top of them.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	settings   commands.Settings

	publisher ports.EventPublisher
	notifier  ports.AgentNotifier
	logger    *slog.Logger
}

// NewCompositionRoot builds the graph from configuration. Money settings are
// validated here so a bad deployment fails at startup, not mid-request.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	deliveryFee, err := kernel.NewMoney(config.DeliveryFee)
	if err != nil {
		return nil, err
	}
	minimumOrder, err := kernel.NewMoney(config.MinimumOrder)
	if err != nil {
		return nil, err
	}

	publisher := kafka.NewOrderEventPublisher(
		[]string{config.KafkaHost},
		config.KafkaOrderEventsTopic,
		logger,
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	notifier := redisout.NewAgentNotifier(redisClient, logger)

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		settings: commands.Settings{
			DeliveryFee:         deliveryFee,
			MinimumOrder:        minimumOrder,
			AutoAdvanceOnAssign: config.AutoAdvanceOnAssign,
		},
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}, nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(
		f,
		customerviews.NewGormAddressReader(c.gormDB),
		services.NewOrderNumberGenerator(),
		c.settings,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignAgentCommandHandler(
		f,
		services.NewAgentDispatcher(),
		customerviews.NewGormCustomerReader(c.gormDB),
		c.notifier,
		c.publisher,
		c.settings,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllAgentsQueryHandler() queries.GetAllAgentsQueryHandler {
	return queries.NewGetAllAgentsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound HTTP surface.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateAssignAgentCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetAllAgentsQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs. The assignable-order
// lookup runs outside any transaction; the assignment itself opens its own.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignAgentCommandHandler(),
		c.uowFactory.Create().OrderRepository(),
		c.logger,
	)
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}
