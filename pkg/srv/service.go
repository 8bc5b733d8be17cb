package srv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/sandevgo/motivate/pkg/log"
)

const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service and blocks until ctx is canceled, SIGINT/SIGTERM arrives
// or a service fails to start. All services are then shut down in reverse order.
func Run(ctx context.Context, services ...Service) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	for _, service := range services {
		p.Go(func(ctx context.Context) error {
			err := service.Start(ctx)
			if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("%T failed to start: %w", service, err)
		})
	}

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		ShutdownServices(ctx, services)
		return nil
	})

	return p.Wait()
}

// ShutdownServices stops services in reverse start order with a bounded timeout.
func ShutdownServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
