package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/pkg/calendar"
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

// RegisterRoutes mounts the merchant inventory endpoints. The group is
// expected to carry JWT auth and the merchant role check.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/inventory/:op", h.ApplyBatch)
	rg.GET("/rooms/:id/inventory", h.GetCalendar)
	rg.GET("/hotels/:id/stock", h.GetStockSummary)
}

func (h *Handler) ApplyBatch(c *gin.Context) {
	op, err := ParseOperation(c.Param("op"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown inventory operation")
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.MerchantID = c.GetInt64("user_id")

	result, err := h.service.Apply(c.Request.Context(), op, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) GetCalendar(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}
	hotelID, err := strconv.ParseInt(c.Query("hotel_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "hotel_id is required")
		return
	}
	from, to, err := queryRange(c)
	if err != nil {
		writeError(c, err)
		return
	}

	grant, err := h.service.Authorize(c.Request.Context(), c.GetInt64("user_id"), hotelID, roomID)
	if err != nil {
		writeError(c, err)
		return
	}

	days, err := h.service.Calendar(c.Request.Context(), grant, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room_id": roomID, "days": days})
}

func (h *Handler) GetStockSummary(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel ID")
		return
	}
	from, to, err := queryRange(c)
	if err != nil {
		writeError(c, err)
		return
	}

	rooms, err := h.service.StockSummary(c.Request.Context(), c.GetInt64("user_id"), hotelID, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotel_id": hotelID, "rooms": rooms})
}

func queryRange(c *gin.Context) (calendar.Date, calendar.Date, error) {
	from, err := calendar.ParseDate(c.Query("start_date"))
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	to, err := calendar.ParseDate(c.Query("end_date"))
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	return from, to, nil
}

func writeError(c *gin.Context, err error) {
	var dateErr *calendar.DateListError
	if errors.As(err, &dateErr) {
		code := "DUPLICATE_DATES"
		if errors.Is(err, ErrMissingDates) {
			code = "MISSING_DATES"
		}
		response.ErrorWithDetails(c, http.StatusConflict, code, err.Error(), gin.H{"dates": dateErr.Dates()})
		return
	}

	switch {
	case errors.Is(err, calendar.ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNoFieldsProvided):
		response.Error(c, http.StatusBadRequest, "NO_FIELDS_PROVIDED", "Provide price or stock")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Room does not belong to this merchant")
	case errors.Is(err, ErrUnknownOperation):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown inventory operation")
	default:
		log.WithError(err).Error("inventory request failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process inventory request")
	}
}
