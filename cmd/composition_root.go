package cmd

import (
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/in/http/openapi"
	kafkain "orderflow/internal/adapters/in/kafka"
	rabbitin "orderflow/internal/adapters/in/rabbitmq"
	"orderflow/internal/adapters/out/eventbus"
	kafkaout "orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/productrepo"
	rabbitout "orderflow/internal/adapters/out/rabbitmq"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/backoff"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	resources  *Resources
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	queuePublisher *rabbitout.Publisher
	publisher      *eventbus.DualPublisher
}

func NewCompositionRoot(cfg Config, resources *Resources, logger *slog.Logger) *CompositionRoot {
	queuePublisher := rabbitout.NewPublisher(rabbitout.ConnectionChannelOpener(resources.AMQP), logger)
	producer := kafkaout.NewProducer(resources.KafkaWriter, logger)

	return &CompositionRoot{
		cfg:            cfg,
		resources:      resources,
		logger:         logger,
		gormDB:         resources.DB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(resources.DB),
		queuePublisher: queuePublisher,
		publisher:      eventbus.NewDualPublisher(queuePublisher, producer, logger),
	}
}

// Close releases the publisher channel. The underlying connections belong to
// Resources.
func (c *CompositionRoot) Close() error {
	return c.queuePublisher.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderEventLogUoWFactory() commands.OrderEventLogUoWFactory {
	return FuncOrderEventLogUoWFactory(func() commands.OrderEventLogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), productrepo.NewGormProductCatalog(c.gormDB), c.publisher)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteAllOrdersCommandHandler() commands.DeleteAllOrdersCommandHandler {
	return commands.NewDeleteAllOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyOrderStatusCommandHandler() commands.ApplyOrderStatusCommandHandler {
	return commands.NewApplyOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordOrderEventCommandHandler() commands.RecordOrderEventCommandHandler {
	return commands.NewRecordOrderEventCommandHandler(c.orderEventLogUoWFactory())
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateShipDeliveryCommandHandler() commands.ShipDeliveryCommandHandler {
	return commands.NewShipDeliveryCommandHandler(
		c.deliveryUoWFactory(), services.NewTrackingNumberGenerator(), c.publisher)
}

func (c *CompositionRoot) CreateDeliverDeliveryCommandHandler() commands.DeliverDeliveryCommandHandler {
	return commands.NewDeliverDeliveryCommandHandler(c.deliveryUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

// SalesHTTP builds the sales API: order endpoints plus health.
func (c *CompositionRoot) SalesHTTP() (*echo.Echo, error) {
	doc, err := openapi.Sales()
	if err != nil {
		return nil, err
	}
	e, err := httpin.NewEcho(openapi.SalesName, doc, c.logger)
	if err != nil {
		return nil, err
	}

	createOrder := c.CreateCreateOrderCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()
	deleteAllOrders := c.CreateDeleteAllOrdersCommandHandler()
	getOrder := c.CreateGetOrderQueryHandler()
	listOrders := c.CreateListOrdersQueryHandler()
	timeline := c.CreateGetOrderTimelineQueryHandler()

	httpin.NewSalesServer(
		&createOrder, &deleteOrder, &deleteAllOrders,
		getOrder, listOrders, timeline, c.logger,
	).Register(e)
	httpin.RegisterHealth(e, postgres.NewStoreProbe(c.gormDB))
	return e, nil
}

// DeliveryHTTP builds the delivery API: delivery endpoints plus health.
func (c *CompositionRoot) DeliveryHTTP() (*echo.Echo, error) {
	doc, err := openapi.Delivery()
	if err != nil {
		return nil, err
	}
	e, err := httpin.NewEcho(openapi.DeliveryName, doc, c.logger)
	if err != nil {
		return nil, err
	}

	ship := c.CreateShipDeliveryCommandHandler()
	deliver := c.CreateDeliverDeliveryCommandHandler()

	httpin.NewDeliveryServer(
		&ship, &deliver,
		c.CreateGetDeliveryQueryHandler(), c.CreateListDeliveriesQueryHandler(), c.logger,
	).Register(e)
	httpin.RegisterHealth(e, postgres.NewStoreProbe(c.gormDB))
	return e, nil
}

func (c *CompositionRoot) consumer(queue string, accepts []events.Type, h rabbitin.Handler) *rabbitin.Consumer {
	return rabbitin.NewConsumer(rabbitin.Config{
		Queue:       queue,
		Accepts:     accepts,
		MaxAttempts: c.cfg.ConsumerMaxAttempts,
		Reconnect:   backoff.DefaultConfig(),
	}, rabbitin.ConnectionChannelOpener(c.resources.AMQP), h, c.logger)
}

// SalesConsumers mirror shipment progress onto orders.
func (c *CompositionRoot) SalesConsumers() []*rabbitin.Consumer {
	apply := c.CreateApplyOrderStatusCommandHandler()
	h := rabbitin.ApplyOrderStatusHandler(&apply, c.logger)
	return []*rabbitin.Consumer{
		c.consumer(events.QueueOrdersShipped, []events.Type{events.TypeOrderShipped}, h),
		c.consumer(events.QueueOrdersDelivered, []events.Type{events.TypeOrderDelivered}, h),
	}
}

// DeliveryConsumers open a delivery per created order.
func (c *CompositionRoot) DeliveryConsumers() []*rabbitin.Consumer {
	create := c.CreateCreateDeliveryCommandHandler()
	return []*rabbitin.Consumer{
		c.consumer(events.QueueOrdersCreated, []events.Type{events.TypeOrderCreated},
			rabbitin.CreateDeliveryHandler(&create, c.logger)),
	}
}

func (c *CompositionRoot) EventLogConsumer() *kafkain.EventLogConsumer {
	record := c.CreateRecordOrderEventCommandHandler()
	return kafkain.NewEventLogConsumer(
		c.resources.OpenEventLogReader(c.cfg), &record, backoff.DefaultConfig(), c.logger)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(postgres.NewStoreProbe(c.gormDB), c.cfg.HealthCheckSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncOrderEventLogUoWFactory func() commands.OrderEventLogUoW

func (f FuncOrderEventLogUoWFactory) Create() commands.OrderEventLogUoW {
	return f()
}
