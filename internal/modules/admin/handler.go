package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicedir/internal/domain"
	"servicedir/internal/modules/booking"
	"servicedir/internal/modules/catalog"
	"servicedir/internal/pkg/response"
	"servicedir/internal/pkg/validator"
	"servicedir/internal/repository"
)

type Handler struct {
	service  *Service
	listings *catalog.Service
	bookings *booking.Service
}

func NewHandler(service *Service, listings *catalog.Service, bookings *booking.Service) *Handler {
	return &Handler{service: service, listings: listings, bookings: bookings}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.ListServices)
	rg.GET("/services/:id", h.GetService)
	rg.POST("/services", h.CreateService)
	rg.PUT("/services/:id", h.UpdateService)
	rg.DELETE("/services/:id", h.DeleteService)
	rg.POST("/services/:id/flags/:flag", h.SetFlag)

	rg.GET("/bookings", h.ListBookings)
	rg.POST("/bookings/:id/status", h.TransitionBooking)
	rg.PATCH("/bookings/:id", h.PatchBooking)

	rg.GET("/export/services.csv", h.ExportServices)
	rg.GET("/export/bookings.csv", h.ExportBookings)

	rg.POST("/maintenance/recount", h.Recount)
}

// ListServices backs the admin table: same filters as the public search,
// inactive rows included (the UI shows them dimmed).
func (h *Handler) ListServices(c *gin.Context) {
	f := catalog.Filter{
		CategoryID:  c.Query("category"),
		City:        c.Query("city"),
		Search:      c.Query("q"),
		PremiumOnly: c.Query("premium") == "true",
	}

	p, err := catalog.ParsePage(c.Query("limit"), c.Query("offset"))
	if err != nil {
		handleError(c, err)
		return
	}

	res, err := h.service.ListServices(c.Request.Context(), f, p)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, res.Items, res.Total, p.Limit, p.Offset, res.HasMore)
}

func (h *Handler) GetService(c *gin.Context) {
	svc, err := h.service.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req catalog.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.listings.CreateListing(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	if err := h.service.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) SetFlag(c *gin.Context) {
	var req FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.SetFlag(c.Request.Context(), c.Param("id"), c.Param("flag"), req.Value)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) ListBookings(c *gin.Context) {
	f := repository.BookingFilters{
		ServiceID: c.Query("service_id"),
		UserID:    c.Query("user_id"),
		Status:    c.Query("status"),
		Date:      c.Query("date"),
	}

	bookings, err := h.bookings.List(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) TransitionBooking(c *gin.Context) {
	var req booking.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	b, err := h.bookings.Transition(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) PatchBooking(c *gin.Context) {
	var req booking.PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.bookings.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ExportServices(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="services.csv"`)
	if err := h.service.ExportServicesCSV(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) ExportBookings(c *gin.Context) {
	f := repository.BookingFilters{
		ServiceID: c.Query("service_id"),
		UserID:    c.Query("user_id"),
		Status:    c.Query("status"),
		Date:      c.Query("date"),
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="bookings.csv"`)
	if err := h.service.ExportBookingsCSV(c.Request.Context(), f, c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) Recount(c *gin.Context) {
	if err := h.service.RecountCategories(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recounted": true})
}

func handleError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError

	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error(), gin.H{"field": ve.Field})
	case errors.As(err, &nf):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", nf.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking cannot move to the requested status")
	case errors.Is(err, catalog.ErrSlugTaken):
		response.Error(c, http.StatusConflict, "CONFLICT", "A listing with this name already exists")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
