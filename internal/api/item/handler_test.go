package item_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ferrastock/internal/api/item"
	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/middleware"
)

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(ctx context.Context, input domain.ItemInput) (domain.Item, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemService) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemService) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, id string, input domain.ItemInput) (domain.Item, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemService) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type roleResolver struct{ role domain.UserRole }

func (r roleResolver) ResolveIdentity(context.Context, string) (domain.Identity, error) {
	return domain.Identity{UserID: "u-1", Role: r.role}, nil
}

func newServer(svc item.ItemService, role domain.UserRole) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NewAuthMiddleware(roleResolver{role}))
	item.NewHandler(svc, logger.NewNop()).RegisterRoutes(r)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateItemHandler_Created(t *testing.T) {
	svc := new(MockItemService)
	svc.On("CreateItem", mock.Anything, mock.MatchedBy(func(in domain.ItemInput) bool {
		return in.Name == "Alicate" && in.Code == "AL-1" && in.Quantity != nil && *in.Quantity == 4
	})).Return(domain.Item{ID: "i-1", Name: "Alicate", Code: "AL-1", Quantity: 4, MinStock: 1}, nil)

	rec := do(newServer(svc, domain.RoleUser), http.MethodPost, "/items", `{"name":"Alicate","code":"AL-1","quantity":4}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "i-1", got.ID)
	svc.AssertExpectations(t)
}

func TestCreateItemHandler_UnknownFieldIsValidationError(t *testing.T) {
	svc := new(MockItemService)

	rec := do(newServer(svc, domain.RoleUser), http.MethodPost, "/items", `{"name":"Alicate","preco":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestGetItemByIDHandler_NotFound(t *testing.T) {
	svc := new(MockItemService)
	svc.On("GetItemByID", mock.Anything, "nao-existe").Return(domain.Item{}, apperror.NewNotFoundError("item"))

	rec := do(newServer(svc, domain.RoleUser), http.MethodGet, "/items/nao-existe", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestListItemsHandler_PassesFilter(t *testing.T) {
	svc := new(MockItemService)
	svc.On("ListItems", mock.Anything, domain.ItemFilter{Name: "chave", LowStockOnly: true, Limit: 10, Offset: 20}).
		Return([]domain.Item{{ID: "i-1"}, {ID: "i-2"}}, nil)

	rec := do(newServer(svc, domain.RoleUser), http.MethodGet, "/items?name=chave&low_stock=true&limit=10&offset=20", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	svc.AssertExpectations(t)
}

func TestListItemsHandler_BadLimit(t *testing.T) {
	rec := do(newServer(new(MockItemService), domain.RoleUser), http.MethodGet, "/items?limit=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItemHandler_UsesPathID(t *testing.T) {
	svc := new(MockItemService)
	svc.On("UpdateItem", mock.Anything, "i-9", mock.AnythingOfType("domain.ItemInput")).
		Return(domain.Item{ID: "i-9", Name: "Novo"}, nil)

	rec := do(newServer(svc, domain.RoleUser), http.MethodPut, "/items/i-9", `{"name":"Novo","code":"N-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteItemHandler_Roles(t *testing.T) {
	t.Run("usuario comum é barrado", func(t *testing.T) {
		svc := new(MockItemService)
		rec := do(newServer(svc, domain.RoleUser), http.MethodDelete, "/items/i-1", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})

	t.Run("admin exclui", func(t *testing.T) {
		svc := new(MockItemService)
		svc.On("DeleteItem", mock.Anything, "i-1").Return(nil)
		rec := do(newServer(svc, domain.RoleAdmin), http.MethodDelete, "/items/i-1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("item com movimentações é conflito", func(t *testing.T) {
		svc := new(MockItemService)
		svc.On("DeleteItem", mock.Anything, "i-1").Return(apperror.NewConflictError("item possui movimentações"))
		rec := do(newServer(svc, domain.RoleAdmin), http.MethodDelete, "/items/i-1", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
