package order

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"hotelbooking/internal/domain"
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

// RegisterRoutes mounts guest endpoints on guest and the check-in and
// complete actions on merchant. Both groups must already be authenticated.
func (h *Handler) RegisterRoutes(guest, merchant *gin.RouterGroup) {
	orders := guest.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.ListMine)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Reconcile)
		orders.POST("/:id/pay", h.Pay)
		orders.POST("/:id/cancel", h.Cancel)
	}

	merchant.POST("/orders/:id/check-in", h.CheckIn)
	merchant.POST("/orders/:id/complete", h.Complete)
}

func actorFrom(c *gin.Context) Actor {
	return Actor{UserID: c.GetInt64("user_id"), Role: domain.UserRole(c.GetString("role"))}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.UserID = c.GetInt64("user_id")

	o, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ListResult{Orders: orders, Limit: limit, Offset: offset})
}

func (h *Handler) Get(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Reconcile(c *gin.Context) {
	var p Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.Reconcile(c.Request.Context(), actorFrom(c), c.Param("id"), p)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

// Pay accepts an empty body or a final patch.
func (h *Handler) Pay(c *gin.Context) {
	var p *Patch
	var body Patch
	if err := c.ShouldBindJSON(&body); err == nil {
		p = &body
	} else if !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.Pay(c.Request.Context(), actorFrom(c), c.Param("id"), p)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Cancel(c *gin.Context) {
	o, err := h.service.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) CheckIn(c *gin.Context) {
	o, err := h.service.CheckIn(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Complete(c *gin.Context) {
	o, err := h.service.Complete(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func writeError(c *gin.Context, err error) {
	var dateErr *calendar.DateListError
	if errors.As(err, &dateErr) {
		response.ErrorWithDetails(c, http.StatusConflict, "INCOMPLETE_INVENTORY", err.Error(), gin.H{"dates": dateErr.Dates()})
		return
	}

	switch {
	case errors.Is(err, calendar.ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order or room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Order status does not allow this action")
	default:
		log.WithError(err).Error("order request failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process order")
	}
}
