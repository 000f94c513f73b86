package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/service/userservice"
)

// MockUserRepository é uma implementação mock de domain.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockTokenService é uma implementação mock de userservice.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, userRole string) (string, error) {
	args := m.Called(userID, userRole)
	return args.String(0), args.Error(1)
}

func newService() (*userservice.UserService, *MockUserRepository, *MockTokenService) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	return userservice.NewService(repo, tokens, logger.NewNop()), repo, tokens
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("Save", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ana@oficina.com" && u.Name == "Ana" && u.Role == domain.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo1")) == nil
	})).Return(domain.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@oficina.com", Role: domain.RoleUser}, nil)

	user, err := svc.Register(ctx, domain.UserRegistration{Name: " Ana ", Email: "ANA@oficina.com", Password: "segredo1"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	repo.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	cases := map[string]domain.UserRegistration{
		"missing name":   {Email: "a@b.com", Password: "segredo1"},
		"bad email":      {Name: "Ana", Email: "ana", Password: "segredo1"},
		"short password": {Name: "Ana", Email: "a@b.com", Password: "123"},
	}
	for name, reg := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, _ := newService()

			_, err := svc.Register(context.Background(), reg)

			var validationErr *apperror.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, apperror.NewConflictError("email em uso"))

	_, err := svc.Register(context.Background(), domain.UserRegistration{Name: "Ana", Email: "a@b.com", Password: "segredo1"})

	var conflictErr *apperror.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestLogin_Success(t *testing.T) {
	svc, repo, tokens := newService()
	user := domain.User{ID: uuid.NewString(), Email: "a@b.com", PasswordHash: hashed(t, "segredo1"), Role: domain.RoleAdmin}
	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(user, nil)
	tokens.On("GenerateToken", user.ID, "admin").Return("jwt-token", nil)

	result, err := svc.Login(context.Background(), domain.LoginRequest{Email: "A@B.com", Password: "segredo1"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	tokens.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, tokens := newService()
	repo.On("FindByEmail", mock.Anything, "a@b.com").
		Return(domain.User{ID: uuid.NewString(), PasswordHash: hashed(t, "segredo1")}, nil)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "errada"})

	var unauthorized *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailIsUnauthorized(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "x@b.com").Return(domain.User{}, apperror.NewNotFoundError("x"))

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "x@b.com", Password: "segredo1"})

	var unauthorized *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestEnsureAdmin_CreatesWhenMissing(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "admin@estoque.com").Return(domain.User{}, apperror.NewNotFoundError("admin"))
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool { return u.Role == domain.RoleAdmin })).
		Return(domain.User{ID: uuid.NewString(), Role: domain.RoleAdmin}, nil)

	created, err := svc.EnsureAdmin(context.Background(), domain.UserRegistration{
		Name: "Administrador", Email: "admin@estoque.com", Password: "troque-me",
	})

	require.NoError(t, err)
	assert.True(t, created)
	repo.AssertExpectations(t)
}

func TestEnsureAdmin_KeepsExisting(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "admin@estoque.com").Return(domain.User{ID: uuid.NewString()}, nil)

	created, err := svc.EnsureAdmin(context.Background(), domain.UserRegistration{Email: "admin@estoque.com", Password: "troque-me"})

	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEnsureAdmin_PropagatesLookupFailure(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "admin@estoque.com").Return(domain.User{}, errors.New("db down"))

	_, err := svc.EnsureAdmin(context.Background(), domain.UserRegistration{Email: "admin@estoque.com", Password: "troque-me"})

	assert.Error(t, err)
}

func TestMe_RejectsMalformedIdentity(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Me(context.Background(), "nope")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
