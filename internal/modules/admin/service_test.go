package admin

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"servicedir/internal/domain"
	"servicedir/internal/modules/catalog"
	"servicedir/internal/repository"
)

type MockServiceStore struct {
	mock.Mock
}

func (m *MockServiceStore) FindAll(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceStore) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*domain.Service, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceStore) ReplaceItems(ctx context.Context, serviceID string, items []domain.ServiceItem) error {
	args := m.Called(ctx, serviceID, items)
	return args.Error(0)
}

func (m *MockServiceStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) RecountAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestService_ListServices_IncludesInactive(t *testing.T) {
	store := new(MockServiceStore)
	store.On("FindAll", mock.Anything).Return([]domain.Service{
		{ID: "1", IsActive: true},
		{ID: "2", IsActive: false},
	}, nil)

	svc := NewService(store, nil, nil, zap.NewNop())
	res, err := svc.ListServices(context.Background(), catalog.Filter{}, catalog.DefaultPage)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestService_SetFlag_UnknownFlag(t *testing.T) {
	svc := NewService(new(MockServiceStore), nil, nil, zap.NewNop())

	_, err := svc.SetFlag(context.Background(), "1", "featured", true)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "flag", ve.Field)
}

func TestService_SetFlag_ActiveTriggersRecount(t *testing.T) {
	store := new(MockServiceStore)
	store.On("UpdateFields", mock.Anything, "1", map[string]interface{}{"is_active": false}).
		Return(&domain.Service{ID: "1", IsActive: false}, nil)

	cats := new(MockCategoryStore)
	cats.On("RecountAll", mock.Anything).Return(nil)

	svc := NewService(store, nil, cats, zap.NewNop())
	updated, err := svc.SetFlag(context.Background(), "1", "active", false)

	assert.NoError(t, err)
	assert.False(t, updated.IsActive)
	cats.AssertCalled(t, "RecountAll", mock.Anything)
}

func TestService_SetFlag_PremiumSkipsRecount(t *testing.T) {
	store := new(MockServiceStore)
	store.On("UpdateFields", mock.Anything, "1", map[string]interface{}{"is_premium": true}).
		Return(&domain.Service{ID: "1", IsPremium: true}, nil)

	cats := new(MockCategoryStore)

	svc := NewService(store, nil, cats, zap.NewNop())
	_, err := svc.SetFlag(context.Background(), "1", "premium", true)

	assert.NoError(t, err)
	cats.AssertNotCalled(t, "RecountAll", mock.Anything)
}

func TestService_UpdateService_NeverTouchesDerivedColumns(t *testing.T) {
	name := "New Name"

	store := new(MockServiceStore)
	store.On("UpdateFields", mock.Anything, "1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasRating := fields["rating"]
		_, hasCount := fields["review_count"]
		return !hasRating && !hasCount && fields["name"] == "New Name"
	})).Return(&domain.Service{ID: "1", Name: name}, nil)

	svc := NewService(store, nil, nil, zap.NewNop())
	updated, err := svc.UpdateService(context.Background(), "1", UpdateServiceRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	store.AssertExpectations(t)
}

func TestService_UpdateService_MissingListingWritesNoItems(t *testing.T) {
	store := new(MockServiceStore)
	store.On("UpdateFields", mock.Anything, "ghost", mock.Anything).
		Return(nil, domain.NotFound("service", "ghost"))

	svc := NewService(store, nil, nil, zap.NewNop())
	items := []ItemRequest{{Name: "Consult", Price: "100", Duration: "30 min"}}
	_, err := svc.UpdateService(context.Background(), "ghost", UpdateServiceRequest{Items: &items})

	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
	store.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateService_ValidatesContact(t *testing.T) {
	svc := NewService(new(MockServiceStore), nil, nil, zap.NewNop())

	bad := "nope"
	_, err := svc.UpdateService(context.Background(), "1", UpdateServiceRequest{Email: &bad})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestService_DeleteService_Recounts(t *testing.T) {
	store := new(MockServiceStore)
	store.On("Delete", mock.Anything, "1").Return(nil)

	cats := new(MockCategoryStore)
	cats.On("RecountAll", mock.Anything).Return(nil)

	svc := NewService(store, nil, cats, zap.NewNop())
	assert.NoError(t, svc.DeleteService(context.Background(), "1"))
	cats.AssertCalled(t, "RecountAll", mock.Anything)
}

func TestService_ExportServicesCSV(t *testing.T) {
	store := new(MockServiceStore)
	store.On("FindAll", mock.Anything).Return([]domain.Service{
		{
			ID: "1", Name: "Dent Smile, Studio", CategoryID: "dental", City: "București",
			Rating: 4.9, ReviewCount: 127, IsPremium: true, IsVerified: true, IsActive: true,
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}, nil)

	svc := NewService(store, nil, nil, zap.NewNop())

	var buf bytes.Buffer
	assert.NoError(t, svc.ExportServicesCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "review_count")
	// comma inside the name must stay quoted
	assert.Contains(t, lines[1], `"Dent Smile, Studio"`)
	assert.Contains(t, lines[1], "4.90")
	assert.Contains(t, lines[1], "2024-01-15")
}

func TestService_ExportBookingsCSV(t *testing.T) {
	bookings := new(MockBookingStore)
	bookings.On("List", mock.Anything, repository.BookingFilters{Status: "pending"}).
		Return([]domain.Booking{
			{ID: "b1", ServiceName: "S", UserName: "U", Date: "2024-05-01", Time: "10:00", Status: domain.BookingPending},
		}, nil)

	svc := NewService(nil, bookings, nil, zap.NewNop())

	var buf bytes.Buffer
	err := svc.ExportBookingsCSV(context.Background(), repository.BookingFilters{Status: "pending"}, &buf)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "b1")
	assert.Contains(t, buf.String(), "pending")
}
