package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicedir/internal/domain"
	"servicedir/internal/pkg/response"
	"servicedir/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListBookings(c *gin.Context) {
	f := repository.BookingFilters{
		ServiceID: c.Query("service_id"),
		UserID:    c.Query("user_id"),
		Status:    c.Query("status"),
		Date:      c.Query("date"),
	}

	bookings, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func handleError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError

	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error(), gin.H{"field": ve.Field})
	case errors.As(err, &nf):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", nf.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking cannot move to the requested status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
