package app

import (
	"net/http"

	"hotelbooking/internal/config"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/admin"
	"hotelbooking/internal/modules/catalog"
	"hotelbooking/internal/modules/inventory"
	"hotelbooking/internal/modules/order"
	"hotelbooking/internal/modules/review"
	"hotelbooking/internal/modules/search"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, j *jwtsvc.Service) *gin.Engine {
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	inventoryHandler := inventory.NewHandler(inventory.NewService(inventoryRepo, roomRepo, hotelRepo))
	searchHandler := search.NewHandler(search.NewService(availabilityRepo, hotelRepo, roomRepo, reviewRepo))
	orderHandler := order.NewHandler(order.NewService(orderRepo, inventoryRepo, roomRepo, hotelRepo))
	catalogHandler := catalog.NewHandler(catalog.NewService(hotelRepo, roomRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, orderRepo, hotelRepo))
	adminHandler := admin.NewHandler(admin.NewService(hotelRepo, reviewRepo))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestTimeout(cfg.RequestTimeout),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		searchHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))

		merchant := protected.Group("/merchant")
		merchant.Use(middleware.MerchantOnly())

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.RequireRole(domain.RoleAdmin))

		reviewHandler.RegisterRoutes(v1, protected)
		catalogHandler.RegisterRoutes(merchant)
		inventoryHandler.RegisterRoutes(merchant)
		orderHandler.RegisterRoutes(protected, merchant)
		adminHandler.RegisterRoutes(adminGroup)
	}

	return r
}
