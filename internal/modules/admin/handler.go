package admin

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

// RegisterRoutes mounts moderation endpoints on a group that already
// requires the admin role.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/hotels/pending", h.GetPendingHotels)
	admin.POST("/hotels/:id/approve", h.ApproveHotel)
	admin.POST("/hotels/:id/reject", h.RejectHotel)
	admin.PATCH("/reviews/:id/visibility", h.SetReviewVisibility)
}

func (h *Handler) GetPendingHotels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	hotels, total, err := h.service.PendingHotels(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, HotelListResponse{Hotels: hotels, Total: total, Page: page, Limit: limit})
}

func (h *Handler) ApproveHotel(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel ID")
		return
	}

	hotel, err := h.service.ApproveHotel(c.Request.Context(), hotelID, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}

func (h *Handler) RejectHotel(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel ID")
		return
	}

	var req RejectHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		return
	}

	hotel, err := h.service.RejectHotel(c.Request.Context(), hotelID, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}

func (h *Handler) SetReviewVisibility(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review ID")
		return
	}

	var req ReviewVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetReviewHidden(c.Request.Context(), reviewID, req.Hidden); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review_id": reviewID, "hidden": req.Hidden})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrAlreadyInState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	default:
		log.WithError(err).Error("admin request failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
