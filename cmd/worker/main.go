package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/activity"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/notify"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker only consumes Kafka. Everything that writes the record store, the
// completion sweep included, runs in the API process that owns the store.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Kafka.Enabled() {
		log.Printf("kafka is not configured, nothing to consume")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{}, 2)
	running := 0

	sender := notify.NewSender(os.Stdout)
	events := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer events.Close()
	running++
	go consume(ctx, done, "booking events", events, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := kafka.Decode(msg, &event); err != nil {
			log.Printf("decode booking event: %v", err)
			return nil
		}
		return sender.Send(ctx, event)
	})

	// Mirror entries published by the API into the file it tails.
	if cfg.Activity.Sink != config.ActivitySinkFile {
		fileLog := activity.NewFileLog(cfg.Activity.File)
		entries := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID+"-activity", cfg.Kafka.ActivityTopic)
		defer entries.Close()
		running++
		go consume(ctx, done, "activity", entries, func(_ context.Context, msg kafkaGo.Message) error {
			var entry activity.Entry
			if err := kafka.Decode(msg, &entry); err != nil {
				log.Printf("decode activity entry: %v", err)
				return nil
			}
			return fileLog.Write(entry)
		})
	}

	for ; running > 0; running-- {
		<-done
	}
	log.Printf("shutting down worker")
}

func consume(ctx context.Context, done chan<- struct{}, name string, consumer *kafka.Consumer, handler func(context.Context, kafkaGo.Message) error) {
	defer func() { done <- struct{}{} }()
	if err := consumer.Consume(ctx, handler); err != nil {
		log.Printf("%s consumer stopped: %v", name, err)
	}
}
