package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/activity"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/rooms"
	"github.com/joho/godotenv"
)

var users = []domain.User{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin, FullName: "Administrator"},
	{Username: "guest1", Password: "guest123", Role: domain.RoleGuest, FullName: "Guest One"},
}

var sampleRooms = []rooms.CreateRoomInput{
	{RoomType: string(domain.RoomVariantStandard), RoomNumber: "101"},
	{RoomType: string(domain.RoomVariantStandard), RoomNumber: "102"},
	{RoomType: string(domain.RoomVariantDeluxe), RoomNumber: "201"},
	{RoomType: string(domain.RoomVariantDeluxe), RoomNumber: "202"},
	{RoomType: string(domain.RoomVariantSuite), RoomNumber: "301"},
}

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

	ctx := context.Background()
	store, closeStore, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	unit := repository.NewUnit(store)
	activityLog := activity.NewFileLog(cfg.Activity.File)

	created, err := seedUsers(ctx, unit)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	log.Printf("seeded %d users", created)

	roomService := rooms.NewRoomService(unit, activityLog)
	for _, input := range sampleRooms {
		room, err := roomService.Create(ctx, domain.System, input)
		switch {
		case errors.Is(err, domain.ErrDuplicateRoomNumber):
			log.Printf("room %s already exists, skipping", input.RoomNumber)
		case err != nil:
			log.Fatalf("seed room %s: %v", input.RoomNumber, err)
		default:
			log.Printf("seeded room %s", room)
		}
	}
}

func seedUsers(ctx context.Context, unit *repository.Unit) (int, error) {
	created := 0
	err := unit.Do(ctx, func(tx *repository.Tx) error {
		for _, usr := range users {
			if _, ok := tx.UserByUsername(usr.Username); ok {
				continue
			}
			usr.ID = tx.NextUserID()
			tx.PutUser(usr)
			created++
		}
		return nil
	})
	return created, err
}
