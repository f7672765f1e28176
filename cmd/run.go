package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	rabbitin "orderflow/internal/adapters/in/rabbitmq"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// RunSales serves the sales API and runs the order status consumers, the
// timeline projection and the store health job until ctx ends.
func (c *CompositionRoot) RunSales(ctx context.Context) error {
	e, err := c.SalesHTTP()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	serve(ctx, g, e, c.cfg.HTTPPort, c.logger)
	runConsumers(ctx, g, c.SalesConsumers())

	timeline := c.EventLogConsumer()
	g.Go(func() error { return timeline.Run(ctx) })

	if err := c.runJobs(ctx, g); err != nil {
		return err
	}
	return g.Wait()
}

// RunDelivery serves the delivery API and runs the order intake consumer and
// the store health job until ctx ends.
func (c *CompositionRoot) RunDelivery(ctx context.Context) error {
	e, err := c.DeliveryHTTP()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	serve(ctx, g, e, c.cfg.HTTPPort, c.logger)
	runConsumers(ctx, g, c.DeliveryConsumers())

	if err := c.runJobs(ctx, g); err != nil {
		return err
	}
	return g.Wait()
}

func (c *CompositionRoot) runJobs(ctx context.Context, g *errgroup.Group) error {
	jm := c.JobManager()
	if err := jm.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	g.Go(func() error {
		<-ctx.Done()
		jm.StopAll()
		return nil
	})
	return nil
}

func serve(ctx context.Context, g *errgroup.Group, e *echo.Echo, port string, logger *slog.Logger) {
	g.Go(func() error {
		logger.InfoContext(ctx, "http server listening", "port", port)
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
}

func runConsumers(ctx context.Context, g *errgroup.Group, consumers []*rabbitin.Consumer) {
	for _, consumer := range consumers {
		g.Go(func() error { return consumer.Run(ctx) })
	}
}
