package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/hotelbooking/api"
	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/activity"
	"github.com/Domenick1991/hotelbooking/internal/bootstrap"
	"github.com/Domenick1991/hotelbooking/internal/cache"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/auth"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/dashboard"
	"github.com/Domenick1991/hotelbooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()
	unit := repository.NewUnit(store)

	checks := map[string]api.Pinger{"store": store}
	fileLog := activity.NewFileLog(cfg.Activity.File)
	var activityLog activity.Log = fileLog

	var (
		roomOpts    []rooms.RoomServiceOption
		bookingOpts []booking.BookingServiceOption
	)
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("WARNING: redis unreachable, room list served from store: %v", err)
		}
		checks["redis"] = redisCache
		roomOpts = append(roomOpts, rooms.WithCache(redisCache))
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("WARNING: %v", err)
		}
		bookingOpts = append(bookingOpts, booking.WithEvents(producer, cfg.Kafka.BookingEventsTopic))

		kafkaLog := activity.NewKafkaLog(producer, cfg.Kafka.ActivityTopic)
		switch cfg.Activity.Sink {
		case config.ActivitySinkKafka:
			activityLog = kafkaLog
		case config.ActivitySinkBoth:
			activityLog = activity.Multi{fileLog, kafkaLog}
		}
	}

	authService := auth.NewAuthService(unit, activityLog, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	roomService := rooms.NewRoomService(unit, activityLog, roomOpts...)
	bookingService := booking.NewBookingService(unit, activityLog, bookingOpts...)
	dashboardService := dashboard.NewDashboardService(unit)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(authService, api.Handlers{
		Auth:      api.NewAuthHandler(authService),
		Rooms:     api.NewRoomHandler(roomService),
		Bookings:  api.NewBookingHandler(bookingService),
		Dashboard: api.NewDashboardHandler(dashboardService),
		Logs:      api.NewLogHandler(fileLog, cfg.Activity.TailLimit),
		Health:    api.NewHealthHandler(checks),
	}, api.RouterOptions{Swagger: cfg.HTTP.SwaggerEnabled})

	go bookingService.RunCompletionSweep(ctx, time.Duration(cfg.Worker.CompletionSweepMinutes)*time.Minute)

	activity.Record(ctx, activityLog, domain.System.String(), activity.LevelInfo, "Application started")
	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
