package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jeffy-git/Airport-Management-System/api"
	"github.com/jeffy-git/Airport-Management-System/config"
	"github.com/jeffy-git/Airport-Management-System/internal/service/booking"
	"github.com/jeffy-git/Airport-Management-System/internal/service/flights"
	"github.com/sirupsen/logrus"
)

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	srv := newServer(cfg, flightSvc, bookingSvc)

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", cfg.HTTP.Address).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	apiGroup := router.Group("/api")
	api.NewFlightHandler(flightSvc).Register(apiGroup.Group("/flights"))
	api.NewBookingHandler(bookingSvc).Register(apiGroup.Group("/bookings"))

	if cfg.HTTP.DocsDir != "" {
		router.Static("/docs", cfg.HTTP.DocsDir)
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}
}
