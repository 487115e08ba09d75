package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicedir/internal/database"
	"servicedir/internal/middleware"
	"servicedir/internal/modules/admin"
	"servicedir/internal/modules/booking"
	"servicedir/internal/modules/catalog"
	"servicedir/internal/modules/review"
	"servicedir/internal/repository"
)

type envelope struct {
	Success    bool                   `json:"success"`
	Data       json.RawMessage        `json:"data,omitempty"`
	Pagination map[string]interface{} `json:"pagination,omitempty"`
	Error      *errorDetail           `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	catalogService := catalog.NewService(serviceRepo, categoryRepo)
	bookingService := booking.NewService(bookingRepo)
	reviewService := review.NewService(reviewRepo)
	adminService := admin.NewService(serviceRepo, bookingRepo, categoryRepo, zap.NewNop())

	r := gin.New()
	r.Use(middleware.RequestLogger(zap.NewNop()))

	v1 := r.Group("/api/v1")
	catalog.NewHandler(catalogService).RegisterRoutes(v1)
	booking.NewHandler(bookingService).RegisterRoutes(v1)
	review.NewHandler(reviewService).RegisterRoutes(v1)
	admin.NewHandler(adminService, catalogService, bookingService).RegisterRoutes(v1.Group("/admin"))

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/csv" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func createListing(t *testing.T, r *gin.Engine, name, city string, premium bool) string {
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/services", map[string]interface{}{
		"name":       name,
		"category":   "stomatologie",
		"city":       city,
		"address":    "Str. Victoriei 123",
		"phone":      "0721234567",
		"email":      "contact@example.ro",
		"is_premium": premium,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var svc struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &svc))
	return svc.ID
}

func TestSearchAndPagination(t *testing.T) {
	r, _ := setupRouter(t)

	createListing(t, r, "Dent Smile Studio", "București", true)
	createListing(t, r, "Auto Expert Service", "Cluj-Napoca", true)
	createListing(t, r, "Elegant Hair Studio", "București", false)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/services?city=bucurești&limit=1&offset=0", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.EqualValues(t, 2, env.Pagination["total"])
	assert.Equal(t, true, env.Pagination["has_more"])

	// premium first even though both match
	var items []struct {
		Name      string `json:"name"`
		IsPremium bool   `json:"is_premium"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Dent Smile Studio", items[0].Name)
}

func TestSearchRejectsBadPagination(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/services?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/services?offset=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestInactiveListingHiddenFromPublicButNotAdmin(t *testing.T) {
	r, _ := setupRouter(t)

	id := createListing(t, r, "Closing Soon", "Iași", false)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/admin/services/"+id+"/flags/active",
		map[string]interface{}{"value": false})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/services/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env := doJSON(t, r, http.MethodGet, "/api/v1/admin/services?q=closing", nil)
	assert.EqualValues(t, 1, env.Pagination["total"])
}

func TestUpdateMissingListingLeavesNoItemRows(t *testing.T) {
	r, db := setupRouter(t)

	w, env := doJSON(t, r, http.MethodPut, "/api/v1/admin/services/no-such-id", map[string]interface{}{
		"name": "Ghost",
		"services": []map[string]string{
			{"name": "Consult", "price": "100 lei", "duration": "30 min"},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	var count int64
	require.NoError(t, db.Table("service_items").Count(&count).Error)
	assert.Zero(t, count)
}

func TestBookingLifecycle(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"service_id":   "1",
		"service_name": "S",
		"user_name":    "U",
		"user_email":   "u@u.com",
		"user_phone":   "0733333333",
		"date":         "2024-05-01",
		"time":         "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, "guest", b.UserID)

	// strict transition: pending -> confirmed
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/admin/bookings/"+b.ID+"/status",
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	// pending-only move is now rejected
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/admin/bookings/"+b.ID+"/status",
		map[string]interface{}{"status": "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	// the raw patch still merges status freely
	w, env = doJSON(t, r, http.MethodPatch, "/api/v1/admin/bookings/"+b.ID,
		map[string]interface{}{"status": "pending", "notes": "rescheduled"})
	require.Equal(t, http.StatusOK, w.Code)

	var patched struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &patched))
	assert.Equal(t, "pending", patched.Status)
	assert.Equal(t, "rescheduled", patched.Notes)
}

func TestBookingValidation(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"service_id":   "1",
		"service_name": "S",
		"user_name":    "U",
		"user_email":   "bad",
		"user_phone":   "0733333333",
		"date":         "2024-05-01",
		"time":         "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"service_name": "S",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Message, "service_id")
}

func TestReviewRecomputesRating(t *testing.T) {
	r, _ := setupRouter(t)

	id := createListing(t, r, "Dent Smile Studio", "București", false)

	for _, rating := range []int{5, 4, 3} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/reviews", map[string]interface{}{
			"service_id": id,
			"user_name":  "Maria",
			"rating":     rating,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	_, env := doJSON(t, r, http.MethodGet, "/api/v1/services/"+id, nil)
	var svc struct {
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &svc))
	assert.InDelta(t, 4.0, svc.Rating, 0.001)
	assert.Equal(t, 3, svc.ReviewCount)
}

func TestReviewForMissingService(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/reviews", map[string]interface{}{
		"service_id": "ghost",
		"user_name":  "Maria",
		"rating":     5,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAdminExportCSV(t *testing.T) {
	r, _ := setupRouter(t)

	createListing(t, r, "Dent Smile Studio", "București", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/export/services.csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Dent Smile Studio")
}
