package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts hotel and room management on the merchant group.
func (h *Handler) RegisterRoutes(merchant *gin.RouterGroup) {
	merchant.POST("/hotels", h.CreateHotel)
	merchant.GET("/hotels", h.ListMyHotels)
	merchant.GET("/hotels/:id/rooms", h.ListRooms)
	merchant.POST("/hotels/:id/rooms", h.CreateRoom)
	merchant.DELETE("/hotels/:id/rooms/:room_id", h.DeleteRoom)
}

/* ---------- HOTEL HANDLERS ---------- */

func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.MerchantID = c.GetInt64("user_id")

	hotel, err := h.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, hotel)
}

func (h *Handler) ListMyHotels(c *gin.Context) {
	hotels, err := h.service.ListMyHotels(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotels": hotels})
}

/* ---------- ROOM HANDLERS ---------- */

func (h *Handler) ListRooms(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rooms, err := h.service.HotelRooms(c.Request.Context(), c.GetInt64("user_id"), hotelID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel_id": hotelID, "rooms": rooms})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), c.GetInt64("user_id"), hotelID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(c, "room_id")
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), c.GetInt64("user_id"), hotelID, roomID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room_id": roomID, "deleted": true})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Hotel does not belong to this merchant")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel or room not found")
	default:
		log.WithError(err).Error("catalog request failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
