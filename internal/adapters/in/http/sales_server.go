package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	DeleteAllOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteAllOrdersCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
	GetOrderTimelineHandler interface {
		Handle(ctx context.Context, query queries.GetOrderTimelineQuery) ([]queries.OrderEventView, error)
	}
)

// SalesServer serves the order endpoints.
type SalesServer struct {
	createOrder      CreateOrderHandler
	deleteOrder      DeleteOrderHandler
	deleteAllOrders  DeleteAllOrdersHandler
	getOrder         GetOrderHandler
	listOrders       ListOrdersHandler
	getOrderTimeline GetOrderTimelineHandler
	logger           *slog.Logger
}

func NewSalesServer(
	createOrder CreateOrderHandler,
	deleteOrder DeleteOrderHandler,
	deleteAllOrders DeleteAllOrdersHandler,
	getOrder GetOrderHandler,
	listOrders ListOrdersHandler,
	getOrderTimeline GetOrderTimelineHandler,
	logger *slog.Logger,
) *SalesServer {
	return &SalesServer{
		createOrder:      createOrder,
		deleteOrder:      deleteOrder,
		deleteAllOrders:  deleteAllOrders,
		getOrder:         getOrder,
		listOrders:       listOrders,
		getOrderTimeline: getOrderTimeline,
		logger:           logger.With("component", "sales-http"),
	}
}

func (s *SalesServer) Register(e *echo.Echo) {
	g := e.Group("/api/v1/orders")
	g.POST("", s.CreateOrder)
	g.GET("", s.ListOrders)
	g.DELETE("", s.DeleteAllOrders)
	g.GET("/:id", s.GetOrder)
	g.DELETE("/:id", s.DeleteOrder)
	g.GET("/:id/events", s.GetOrderTimeline)
}

// CreateOrder handles POST /api/v1/orders. A request repeating an earlier
// idempotency_key answers 200 with the original order.
func (s *SalesServer) CreateOrder(c echo.Context) error {
	var req NewOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(req.UserID, req.ProductID, req.Quantity, req.IdempotencyKey)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	res, err := s.createOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		if res.Order != nil && errors.Is(err, errs.ErrTransport) {
			s.logger.WarnContext(c.Request().Context(), "order stored but not fully published",
				"order_id", res.Order.ID().String(), "error", err)
		}
		return writeError(c, s.logger, err)
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, orderFromDomain(res.Order))
}

// ListOrders handles GET /api/v1/orders?status=.
func (s *SalesServer) ListOrders(c echo.Context) error {
	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &status); err != nil {
		return badRequest(c, err.Error())
	}

	var filter string
	if status != nil {
		filter = *status
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	views, err := s.listOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	response := make([]OrderResponse, len(views))
	for i, v := range views {
		response[i] = orderFromView(v)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *SalesServer) GetOrder(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	view, err := s.getOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// GetOrderTimeline handles GET /api/v1/orders/:id/events.
func (s *SalesServer) GetOrderTimeline(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderTimelineQuery(id)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	views, err := s.getOrderTimeline.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	response := make([]OrderEventResponse, len(views))
	for i, v := range views {
		response[i] = eventFromView(v)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteOrder handles DELETE /api/v1/orders/:id. Unknown ids succeed.
func (s *SalesServer) DeleteOrder(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := s.deleteOrder.Handle(c.Request().Context(), commands.NewDeleteOrderCommand(id)); err != nil {
		return writeError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAllOrders handles DELETE /api/v1/orders.
func (s *SalesServer) DeleteAllOrders(c echo.Context) error {
	if err := s.deleteAllOrders.Handle(c.Request().Context(), commands.NewDeleteAllOrdersCommand()); err != nil {
		return writeError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindID(c echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	return id, err
}
