package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servicedir/internal/domain"
	"servicedir/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.SearchServices)
	rg.GET("/services/:id", h.GetService)
	rg.POST("/services", h.CreateService)
	rg.GET("/categories", h.ListCategories)
}

// SearchServices handles GET /api/v1/services with filters
func (h *Handler) SearchServices(c *gin.Context) {
	f := Filter{
		CategoryID:  c.Query("category"),
		City:        c.Query("city"),
		Search:      c.Query("q"),
		PremiumOnly: c.Query("premium") == "true",
	}

	p, err := ParsePage(c.Query("limit"), c.Query("offset"))
	if err != nil {
		handleError(c, err)
		return
	}

	res, err := h.service.Search(c.Request.Context(), f, p)
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
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.CreateListing(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats)
}

// ParsePage reads limit/offset query values, applying the defaults when a
// value is absent. Non-numeric input fails rather than falling back.
func ParsePage(limitStr, offsetStr string) (Page, error) {
	p := DefaultPage

	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil {
			return Page{}, domain.Invalid("limit", "must be an integer")
		}
		p.Limit = v
	}
	if offsetStr != "" {
		v, err := strconv.Atoi(offsetStr)
		if err != nil {
			return Page{}, domain.Invalid("offset", "must be an integer")
		}
		p.Offset = v
	}
	return p, nil
}

func handleError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError

	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error(), gin.H{"field": ve.Field})
	case errors.As(err, &nf):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", nf.Error())
	case errors.Is(err, ErrSlugTaken):
		response.Error(c, http.StatusConflict, "CONFLICT", "A listing with this name already exists")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
