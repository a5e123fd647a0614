package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/kafka"
	"github.com/Domenick1991/tripmates/internal/notify"
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
	if !cfg.Kafka.Enabled() || cfg.Kafka.NotificationsTopic == "" {
		log.Fatalf("worker needs kafka.brokers and kafka.notifications_topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := notify.NewSender()

	log.Printf("consuming %s as %s", cfg.Kafka.NotificationsTopic, cfg.Kafka.GroupID)
	if err := consumer.Consume(ctx, kafka.MatchEventHandler(sender.Send)); err != nil {
		log.Printf("consumer stopped: %v", err)
	}
	log.Printf("worker shut down")
}
