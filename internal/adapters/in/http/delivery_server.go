package http

import (
	"context"
	"log/slog"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/delivery"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type (
	ShipDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.ShipDeliveryCommand) (*delivery.Delivery, error)
	}
	DeliverDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.DeliverDeliveryCommand) (*delivery.Delivery, error)
	}
	GetDeliveryHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveryQuery) (queries.DeliveryView, error)
	}
	ListDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.ListDeliveriesQuery) ([]queries.DeliveryView, error)
	}
)

// DeliveryServer serves the delivery endpoints. Ship and deliver are reachable
// by delivery id and by the id of the order the delivery was opened for.
type DeliveryServer struct {
	ship           ShipDeliveryHandler
	deliver        DeliverDeliveryHandler
	getDelivery    GetDeliveryHandler
	listDeliveries ListDeliveriesHandler
	logger         *slog.Logger
}

func NewDeliveryServer(
	ship ShipDeliveryHandler,
	deliver DeliverDeliveryHandler,
	getDelivery GetDeliveryHandler,
	listDeliveries ListDeliveriesHandler,
	logger *slog.Logger,
) *DeliveryServer {
	return &DeliveryServer{
		ship:           ship,
		deliver:        deliver,
		getDelivery:    getDelivery,
		listDeliveries: listDeliveries,
		logger:         logger.With("component", "delivery-http"),
	}
}

func (s *DeliveryServer) Register(e *echo.Echo) {
	e.GET("/api/v1/deliveries", s.ListDeliveries)
	e.GET("/api/v1/deliveries/:id", s.GetDelivery)
	e.POST("/api/v1/deliveries/:id/ship", s.shipBy(commands.ByDeliveryID))
	e.POST("/api/v1/deliveries/:id/deliver", s.deliverBy(commands.ByDeliveryID))
	e.GET("/api/v1/orders/:id", s.GetDeliveryByOrder)
	e.POST("/api/v1/orders/:id/ship", s.shipBy(commands.ByOrderID))
	e.POST("/api/v1/orders/:id/deliver", s.deliverBy(commands.ByOrderID))
}

// ListDeliveries handles GET /api/v1/deliveries?status=.
func (s *DeliveryServer) ListDeliveries(c echo.Context) error {
	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &status); err != nil {
		return badRequest(c, err.Error())
	}

	var filter string
	if status != nil {
		filter = *status
	}

	query, err := queries.NewListDeliveriesQuery(filter)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	views, err := s.listDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	response := make([]DeliveryResponse, len(views))
	for i, v := range views {
		response[i] = deliveryFromView(v)
	}
	return c.JSON(http.StatusOK, response)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *DeliveryServer) GetDelivery(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetDeliveryQuery(id)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	view, err := s.getDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, deliveryFromView(view))
}

// GetDeliveryByOrder handles GET /api/v1/orders/:id, the delivery opened for an order.
func (s *DeliveryServer) GetDeliveryByOrder(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetDeliveryByOrderQuery(id)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	view, err := s.getDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, deliveryFromView(view))
}

func (s *DeliveryServer) shipBy(lookup commands.Lookup) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := bindID(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		cmd, err := commands.NewShipDeliveryCommand(id, lookup)
		if err != nil {
			return writeError(c, s.logger, err)
		}

		d, err := s.ship.Handle(c.Request().Context(), cmd)
		return s.transitioned(c, d, err)
	}
}

func (s *DeliveryServer) deliverBy(lookup commands.Lookup) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := bindID(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		cmd, err := commands.NewDeliverDeliveryCommand(id, lookup)
		if err != nil {
			return writeError(c, s.logger, err)
		}

		d, err := s.deliver.Handle(c.Request().Context(), cmd)
		return s.transitioned(c, d, err)
	}
}

func (s *DeliveryServer) transitioned(c echo.Context, d *delivery.Delivery, err error) error {
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, deliveryFromDomain(d))
}
