package supplierservice_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/service/supplierservice"
)

// MockSupplierRepository é uma implementação mock da interface SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	args := m.Called(ctx, supplier)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	args := m.Called(ctx, supplier)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) DeleteSupplier(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestLogger() logger.Logger {
	return logger.NewNop()
}

// --- Testes para CreateSupplier ---

func TestCreateSupplier_Success(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	svc := supplierservice.NewService(mockRepo, newTestLogger())

	expected := domain.Supplier{Name: "Distribuidora Norte", Email: "vendas@norte.com.br"}
	created := expected
	created.ID = uuid.New().String()
	mockRepo.On("CreateSupplier", mock.Anything, expected).Return(created, nil)

	result, err := svc.CreateSupplier(context.Background(), domain.Supplier{Name: "  Distribuidora Norte ", Email: "Vendas@Norte.com.br"})

	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreateSupplier_Validation(t *testing.T) {
	cases := map[string]domain.Supplier{
		"empty name":     {Name: "   "},
		"name too long":  {Name: strings.Repeat("a", 101)},
		"bad email":      {Name: "Norte", Email: "vendas"},
		"phone too long": {Name: "Norte", Phone: strings.Repeat("9", 21)},
	}
	for name, supplier := range cases {
		t.Run(name, func(t *testing.T) {
			mockRepo := new(MockSupplierRepository)
			svc := supplierservice.NewService(mockRepo, newTestLogger())

			_, err := svc.CreateSupplier(context.Background(), supplier)

			var validationErr *apperror.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			mockRepo.AssertNotCalled(t, "CreateSupplier", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateSupplier_RepoError(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	svc := supplierservice.NewService(mockRepo, newTestLogger())
	mockRepo.On("CreateSupplier", mock.Anything, mock.Anything).Return(domain.Supplier{}, apperror.NewDBError("insert", errors.New("db down")))

	_, err := svc.CreateSupplier(context.Background(), domain.Supplier{Name: "Norte"})

	var internalErr *apperror.InternalError
	assert.ErrorAs(t, err, &internalErr)
}

// --- Testes para GetSupplierByID ---

func TestGetSupplierByID_InvalidUUID(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	svc := supplierservice.NewService(mockRepo, newTestLogger())

	_, err := svc.GetSupplierByID(context.Background(), "invalid-uuid")

	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	mockRepo.AssertNotCalled(t, "GetSupplierByID", mock.Anything, mock.Anything)
}

func TestGetSupplierByID_NotFound(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	svc := supplierservice.NewService(mockRepo, newTestLogger())
	id := uuid.New().String()
	mockRepo.On("GetSupplierByID", mock.Anything, id).Return(domain.Supplier{}, apperror.NewNotFoundError(id))

	_, err := svc.GetSupplierByID(context.Background(), id)

	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

// --- Testes para GetAllSuppliers ---

func TestGetAllSuppliers_Success(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	svc := supplierservice.NewService(mockRepo, newTestLogger())
	mockRepo.On("GetAllSuppliers", mock.Anything).Return([]domain.Supplier{{Name: "A"}, {Name: "B"}}, nil)

	suppliers, err := svc.GetAllSuppliers(context.Background())

	require.NoError(t, err)
	assert.Len(t, suppliers, 2)
}

// --- Testes para UpdateSupplier e DeleteSupplier ---

func TestUpdateSupplier_UsesPathID(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	svc := supplierservice.NewService(mockRepo, newTestLogger())
	id := uuid.New().String()

	mockRepo.On("UpdateSupplier", mock.Anything, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.ID == id && s.Name == "Norte"
	})).Return(domain.Supplier{ID: id, Name: "Norte"}, nil)

	updated, err := svc.UpdateSupplier(context.Background(), id, domain.Supplier{ID: "outro", Name: "Norte"})

	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	mockRepo.AssertExpectations(t)
}

func TestDeleteSupplier_WithItemsConflicts(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	svc := supplierservice.NewService(mockRepo, newTestLogger())
	id := uuid.New().String()
	mockRepo.On("DeleteSupplier", mock.Anything, id).Return(apperror.NewConflictError("itens vinculados"))

	err := svc.DeleteSupplier(context.Background(), id)

	var conflictErr *apperror.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}
