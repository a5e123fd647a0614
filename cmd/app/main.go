package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/bootstrap"
	"github.com/Domenick1991/tripmates/internal/cache"
	"github.com/Domenick1991/tripmates/internal/kafka"
	"github.com/Domenick1991/tripmates/internal/repository"
	"github.com/Domenick1991/tripmates/internal/service/matching"
	"github.com/Domenick1991/tripmates/internal/service/trips"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		tripRepo  repository.TripPlanRepository
		matchRepo repository.MatchRequestRepository
	)
	if cfg.Database.InMemory() {
		log.Printf("using in-memory storage")
		registry := repository.NewMemoryTripPlanRepository()
		if cfg.Database.SeedFile != "" {
			data, err := os.ReadFile(cfg.Database.SeedFile)
			if err != nil {
				log.Fatalf("read seed file: %v", err)
			}
			n, err := registry.LoadJSON(data)
			if err != nil {
				log.Fatalf("seed trip plans: %v", err)
			}
			log.Printf("seeded %d trip plans from %s", n, cfg.Database.SeedFile)
		} else {
			log.Printf("WARNING: memory registry is empty, set database.seed_file to load trip plans")
		}
		tripRepo = registry
		matchRepo = repository.NewMemoryMatchRequestRepository()
	} else {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		tripRepo = repository.NewTripPlanRepository(pool)
		matchRepo = repository.NewMatchRequestRepository(pool)
	}

	var tripCache trips.TripCache
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Matching.TripCacheTTL())
		defer redisCache.Close()
		tripCache = redisCache
	}
	tripService := trips.NewTripService(tripRepo, tripCache)

	var opts []matching.MatchServiceOption
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("WARNING: kafka unavailable, events may be lost: %v", err)
		}
		opts = append(opts,
			matching.WithEvents(producer, cfg.Kafka.MatchEventsTopic),
			matching.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	matchService := matching.NewMatchService(matchRepo, tripService, opts...)

	if err := bootstrap.Run(ctx, cfg, tripService, matchService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
