package supplier_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ferrastock/internal/api/supplier"
	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/middleware"
)

type MockSupplierService struct {
	mock.Mock
}

func (m *MockSupplierService) CreateSupplier(ctx context.Context, s domain.Supplier) (domain.Supplier, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) UpdateSupplier(ctx context.Context, id string, s domain.Supplier) (domain.Supplier, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) DeleteSupplier(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type roleResolver struct{ role domain.UserRole }

func (r roleResolver) ResolveIdentity(context.Context, string) (domain.Identity, error) {
	return domain.Identity{UserID: "u-1", Role: r.role}, nil
}

func newServer(svc supplier.SupplierService, role domain.UserRole) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NewAuthMiddleware(roleResolver{role}))
	supplier.NewHandler(svc, logger.NewNop()).RegisterRoutes(r)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateSupplierHandler(t *testing.T) {
	svc := new(MockSupplierService)
	svc.On("CreateSupplier", mock.Anything, domain.Supplier{Name: "Gerdau", Phone: "1133334444"}).
		Return(domain.Supplier{ID: "s-1", Name: "Gerdau", Phone: "1133334444"}, nil)

	rec := do(newServer(svc, domain.RoleUser), http.MethodPost, "/suppliers", `{"name":"Gerdau","phone":"1133334444"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"s-1"`)
	svc.AssertExpectations(t)
}

func TestCreateSupplierHandler_ValidationFromService(t *testing.T) {
	svc := new(MockSupplierService)
	svc.On("CreateSupplier", mock.Anything, mock.Anything).Return(domain.Supplier{}, apperror.NewValidationError("nome obrigatório"))

	rec := do(newServer(svc, domain.RoleUser), http.MethodPost, "/suppliers", `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAllSuppliersHandler(t *testing.T) {
	svc := new(MockSupplierService)
	svc.On("GetAllSuppliers", mock.Anything).Return([]domain.Supplier{{ID: "s-1"}, {ID: "s-2"}}, nil)

	rec := do(newServer(svc, domain.RoleUser), http.MethodGet, "/suppliers", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"s-2"`)
}

func TestUpdateSupplierHandler_NotFound(t *testing.T) {
	svc := new(MockSupplierService)
	svc.On("UpdateSupplier", mock.Anything, "s-9", domain.Supplier{Name: "Novo"}).
		Return(domain.Supplier{}, apperror.NewNotFoundError("fornecedor"))

	rec := do(newServer(svc, domain.RoleUser), http.MethodPut, "/suppliers/s-9", `{"name":"Novo"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSupplierHandler(t *testing.T) {
	svc := new(MockSupplierService)
	svc.On("DeleteSupplier", mock.Anything, "s-1").Return(apperror.NewConflictError("fornecedor possui itens"))

	assert.Equal(t, http.StatusForbidden, do(newServer(svc, domain.RoleUser), http.MethodDelete, "/suppliers/s-1", "").Code)
	assert.Equal(t, http.StatusConflict, do(newServer(svc, domain.RoleAdmin), http.MethodDelete, "/suppliers/s-1", "").Code)
}
