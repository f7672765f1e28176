// Package http is the REST boundary of the sales and delivery services.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// NewEcho builds an echo instance serving the shared endpoints of a service:
// /metrics, /openapi.json and /swagger/*. Requests that match an operation of
// doc are validated against it before they reach a handler.
func NewEcho(name string, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s openapi document: %w", name, err)
	}
	if swag.GetSwagger(name) == nil {
		swag.Register(name, swaggerDoc(raw))
	}

	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(validator)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, raw)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(name)))

	return e, nil
}

type swaggerDoc []byte

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

// requestValidator rejects requests that violate their operation's parameters
// or body schema. Paths outside doc pass through untouched.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route, pathParams, err := router.FindRoute(c.Request())
			if err != nil {
				return next(c)
			}

			err = openapi3filter.ValidateRequest(c.Request().Context(), &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return badRequest(c, validationMessage(err))
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

// Pinger reports whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealth mounts GET /api/v1/health, answering 503 while the store is down.
func RegisterHealth(e *echo.Echo, store Pinger) {
	e.GET("/api/v1/health", func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: false})
		}
		return c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Database: true})
	})
}
