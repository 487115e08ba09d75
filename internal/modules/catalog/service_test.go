package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"servicedir/internal/domain"
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

func (m *MockServiceStore) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) ListActive(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func validCreateRequest() CreateServiceRequest {
	return CreateServiceRequest{
		Name:       "Dent Smile Studio",
		CategoryID: "stomatologie",
		City:       "București",
		Address:    "Str. Victoriei 123",
		Phone:      "0721234567",
		Email:      "contact@dentsmile.ro",
	}
}

func TestService_CreateListing_Success(t *testing.T) {
	store := new(MockServiceStore)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, nil)
	created, err := svc.CreateListing(context.Background(), validCreateRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "dent-smile-studio", created.Slug)
	assert.Equal(t, float64(0), created.Rating)
	assert.Equal(t, 0, created.ReviewCount)
	assert.False(t, created.IsVerified)
	assert.True(t, created.IsActive)
	assert.Len(t, created.Schedule, 7)
	store.AssertExpectations(t)
}

func TestService_CreateListing_MissingFieldFailsFast(t *testing.T) {
	svc := NewService(new(MockServiceStore), nil)

	req := validCreateRequest()
	req.Name = ""
	req.City = "  "

	_, err := svc.CreateListing(context.Background(), req)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	// first violation in field order wins
	assert.Equal(t, "name", ve.Field)
}

func TestService_CreateListing_InvalidContact(t *testing.T) {
	svc := NewService(new(MockServiceStore), nil)

	bad := validCreateRequest()
	bad.Email = "not-an-email"
	_, err := svc.CreateListing(context.Background(), bad)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)

	bad = validCreateRequest()
	bad.Phone = "123"
	_, err = svc.CreateListing(context.Background(), bad)
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "phone", ve.Field)
}

func TestService_CreateListing_DuplicateSlug(t *testing.T) {
	store := new(MockServiceStore)
	store.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: services.slug"))

	svc := NewService(store, nil)
	_, err := svc.CreateListing(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestService_GetService_HidesInactive(t *testing.T) {
	store := new(MockServiceStore)
	store.On("GetByID", mock.Anything, "svc-1").
		Return(&domain.Service{ID: "svc-1", IsActive: false}, nil)

	svc := NewService(store, nil)
	_, err := svc.GetService(context.Background(), "svc-1")

	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "dent-smile-studio", Slugify("Dent Smile Studio"))
	assert.Equal(t, "curatenie-generala", Slugify("Curățenie Generală"))
	assert.Equal(t, "frizerii-saloane", Slugify("Frizerii & Saloane"))
	assert.Equal(t, "abc-123", Slugify("  ABC---123!  "))
}
