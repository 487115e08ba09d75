package review

import (
	"errors"
	"net/http"

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
	rg.POST("/reviews", h.CreateReview)
	rg.GET("/services/:id/reviews", h.ListReviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, summary, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"review":  rv,
		"service": summary,
	})
}

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListByService(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

func handleError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError

	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error(), gin.H{"field": ve.Field})
	case errors.As(err, &nf):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", nf.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
