package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/database"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/auth"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
)

type seedRoom struct {
	roomType    string
	price       float64
	description string
}

var rooms = []seedRoom{
	{"Single", 89, "Compact room with a single bed and a work desk."},
	{"Single", 95, "Single room overlooking the courtyard."},
	{"Double", 129, "Double bed, rain shower and city view."},
	{"Double", 139, "Corner double room with extra natural light."},
	{"Twin", 125, "Two single beds, ideal for colleagues or friends."},
	{"Family", 189, "One double and two single beds with a lounge area."},
	{"Suite", 259, "Separate living room, king bed and bathtub."},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-seed", cfg.App.Env)
	logger := observability.GetLogger()

	ctx := context.Background()
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	if os.Getenv("RESET_DB") == "true" {
		logger.Warn().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE reviews, bookings, rooms, users CASCADE`); err != nil {
			logger.Fatal().Err(err).Msg("Failed to reset database")
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	authService := services.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	)

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@hotel.local")
	exists, err := userRepo.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to look up admin")
	}
	if !exists {
		admin, err := authService.Register(ctx, services.RegisterInput{
			Name:     "Hotel Admin",
			Email:    adminEmail,
			Password: getEnv("SEED_ADMIN_PASSWORD", "change-me"),
			Role:     string(entities.RoleAdmin),
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create admin")
		}
		logger.Info().Str("email", admin.Email).Str("role", string(admin.Role)).Msg("Seeded admin user")
	}

	roomRepo := database.NewRoomAdapter(pgClient)
	existing, err := roomRepo.List(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to list rooms")
	}
	if len(existing) > 0 {
		logger.Info().Int("rooms", len(existing)).Msg("Rooms already present, skipping room seed")
		return
	}

	now := time.Now().UTC()
	for _, r := range rooms {
		room := &entities.Room{
			ID:              uuid.NewString(),
			RoomType:        r.roomType,
			RoomPrice:       r.price,
			RoomDescription: r.description,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := roomRepo.Create(ctx, room); err != nil {
			logger.Fatal().Err(err).Str("room_type", r.roomType).Msg("Failed to seed room")
		}
	}
	logger.Info().Int("rooms", len(rooms)).Msg("Seed complete")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
