package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/tripmates/api"
	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/middleware"
	"github.com/Domenick1991/tripmates/internal/service/matching"
	"github.com/Domenick1991/tripmates/internal/service/trips"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Run starts the HTTP server and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, tripSvc trips.TripUseCase, matchSvc matching.MatchUseCase) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewHandler(cfg, tripSvc, matchSvc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
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

// NewHandler builds the router wrapped in CORS handling.
func NewHandler(cfg *config.Config, tripSvc trips.TripUseCase, matchSvc matching.MatchUseCase) http.Handler {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	v1 := router.Group("/api/v1")
	matchHandler := api.NewMatchHandler(matchSvc)
	matchHandler.Register(v1.Group("/matches"), limiter.Limit())
	matchHandler.RegisterUserRoutes(v1.Group("/users"))
	api.NewTripHandler(tripSvc).Register(v1.Group("/trips"))

	origins := cfg.HTTP.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.UserIDHeader},
	}).Handler(router)
}
