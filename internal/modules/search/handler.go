package search

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/hotels")
	{
		hotels.GET("/search", h.Search)
		hotels.GET("/:id", h.GetDetail)
	}
}

func (h *Handler) Search(c *gin.Context) {
	var params SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	q, err := ParseSearch(params)
	if err != nil {
		writeError(c, err)
		return
	}

	hits, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotels": hits, "count": len(hits)})
}

func (h *Handler) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel ID")
		return
	}

	w, err := calendar.ParseStayWindow(c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		writeError(c, err)
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id, w)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
	default:
		log.WithError(err).Error("search request failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load hotels")
	}
}
