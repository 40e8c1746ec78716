package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/inventory"
	"hotelbooking/internal/pkg/calendar"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const inventoryDays = 60

var reviewTexts = []string{
	"Very clean rooms and a great location near the center.",
	"Friendly staff, breakfast was good, quiet at night.",
	"Nice view from the balcony but parking is tight.",
	"Spacious and comfortable, great value for money.",
	"Service was slow, but the pool made up for it.",
	"Clean, quiet and friendly. Would stay again.",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Info("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	// children first
	log.Info("Cleaning old data...")
	for _, table := range []string{"order_day_details", "orders", "reviews", "inventory_days", "rooms", "hotel_media", "hotels"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	ctx := context.Background()

	// ================== USERS ==================
	log.Info("Creating users...")
	users := []domain.User{
		{ID: 1, Email: "admin@hotels.local", Name: "Admin", Role: domain.RoleAdmin},
		{ID: 2, Email: "owner.almaty@hotels.local", Name: "Aidar", Role: domain.RoleMerchant},
		{ID: 3, Email: "owner.astana@hotels.local", Name: "Gulnaz", Role: domain.RoleMerchant},
		{ID: 4, Email: "guest@hotels.local", Name: "Dina", Phone: "+7 777 123 4567", Role: domain.RoleGuest},
	}
	userRepo := repository.NewUserRepository(db)
	for i := range users {
		if err := userRepo.Upsert(ctx, &users[i]); err != nil {
			log.Fatalf("upsert user %s: %v", users[i].Email, err)
		}
	}

	// ================== HOTELS ==================
	log.Info("Creating hotels and rooms...")
	type seedHotel struct {
		merchant int64
		name     string
		city     string
		stars    int
		status   domain.HotelStatus
	}
	seeds := []seedHotel{
		{2, "Riverside Inn", "Almaty", 4, domain.HotelPublished},
		{2, "Mountain View Resort", "Almaty", 5, domain.HotelPublished},
		{2, "Old Town Hostel", "Almaty", 2, domain.HotelPending},
		{3, "Steppe Grand", "Astana", 5, domain.HotelPublished},
		{3, "Baiterek Suites", "Astana", 4, domain.HotelPublished},
	}

	hotels := repository.NewHotelRepository(db)
	rooms := repository.NewRoomRepository(db)
	reviews := repository.NewReviewRepository(db)
	mutator := inventory.NewService(repository.NewInventoryRepository(db), rooms, hotels)

	start := calendar.Today(time.Local)
	end := start.AddDays(inventoryDays)

	for i, s := range seeds {
		h := &domain.Hotel{
			MerchantID:  s.merchant,
			Name:        s.name,
			City:        s.city,
			Address:     fmt.Sprintf("%d Abay Ave, %s", 10+i*7, s.city),
			Description: "Seed hotel for local development",
			StarRating:  s.stars,
			Score:       3.5 + rand.Float64()*1.5,
			Status:      s.status,
		}
		if err := hotels.Create(ctx, h); err != nil {
			log.Fatalf("create hotel %s: %v", s.name, err)
		}
		for m := 0; m < 3; m++ {
			media := &domain.HotelMedia{HotelID: h.ID, URL: fmt.Sprintf("/static/hotels/%d/%d.jpg", h.ID, m), SortOrder: m}
			if err := hotels.AddMedia(ctx, media); err != nil {
				log.Fatalf("add media: %v", err)
			}
		}

		for j, rt := range []domain.RoomType{domain.RoomStandard, domain.RoomDouble, domain.RoomSuite} {
			base := int64(60 + s.stars*20 + j*40)
			room := &domain.Room{
				HotelID:       h.ID,
				Name:          fmt.Sprintf("%s %d", rt, j+1),
				RoomType:      rt,
				Price:         decimal.NewFromInt(base),
				OriginalPrice: decimal.NewFromInt(base + 20),
				Cancellable:   j != 0,
			}
			if err := rooms.Create(ctx, room); err != nil {
				log.Fatalf("create room: %v", err)
			}
			seedInventory(ctx, mutator, h, room, start, end)
		}

		for k := 0; k < 4; k++ {
			rv := &domain.Review{
				HotelID: h.ID,
				UserID:  4,
				Rating:  3 + rand.Intn(3),
				Content: reviewTexts[(i+k)%len(reviewTexts)],
			}
			if err := reviews.Create(ctx, rv); err != nil {
				log.Fatalf("create review: %v", err)
			}
		}
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	for _, u := range users {
		token, err := j.GenerateToken(u.ID, string(u.Role))
		if err != nil {
			log.Fatal(err)
		}
		log.WithFields(log.Fields{"email": u.Email, "role": u.Role}).Info("token: " + token)
	}

	log.WithField("days", inventoryDays).Info("Seed complete")
}

// seedInventory fills the window at the room's listed price, marks weekends
// up and sells out one random night so search has gaps to skip.
func seedInventory(ctx context.Context, mutator *inventory.Service, h *domain.Hotel, room *domain.Room, start, end calendar.Date) {
	req := func() inventory.BatchRequest {
		return inventory.BatchRequest{
			MerchantID: h.MerchantID,
			HotelID:    h.ID,
			RoomID:     room.ID,
			StartDate:  start.String(),
			EndDate:    end.String(),
		}
	}

	stock := 2 + rand.Intn(6)
	add := req()
	add.Price = &room.Price
	add.Stock = &stock
	if _, err := mutator.Apply(ctx, inventory.OpAdd, add); err != nil {
		log.Fatalf("add inventory for room %d: %v", room.ID, err)
	}

	weekend := room.Price.Mul(decimal.NewFromFloat(1.25))
	upd := req()
	upd.Weekdays = []int{5, 6}
	upd.Price = &weekend
	if _, err := mutator.Apply(ctx, inventory.OpUpdate, upd); err != nil {
		log.Fatalf("update weekend prices for room %d: %v", room.ID, err)
	}

	soldOut := start.AddDays(rand.Intn(inventoryDays))
	clr := req()
	clr.StartDate = soldOut.String()
	clr.EndDate = soldOut.AddDays(1).String()
	if _, err := mutator.Apply(ctx, inventory.OpClear, clr); err != nil {
		log.Fatalf("clear inventory for room %d: %v", room.ID, err)
	}
}
