package userservice

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ferrastock/internal/domain"
	apperror "ferrastock/internal/errors"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/validate"
)

// MinPasswordLength é o tamanho mínimo aceito para senhas novas.
const MinPasswordLength = 6

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo domain.UserRepository
	TokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo domain.UserRepository, tokenSvc TokenService, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register registra um novo usuário comum no sistema.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	return s.create(ctx, registration, domain.RoleUser)
}

// EnsureAdmin cria o administrador inicial se o e-mail ainda não existir.
// Retorna true quando um usuário foi criado.
func (s *UserService) EnsureAdmin(ctx context.Context, registration domain.UserRegistration) (bool, error) {
	_, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(registration.Email)))
	if err == nil {
		return false, nil
	}
	var notFoundErr *apperror.NotFoundError
	if !errors.As(err, &notFoundErr) {
		return false, err
	}

	if _, err := s.create(ctx, registration, domain.RoleAdmin); err != nil {
		return false, err
	}
	s.logger.Info("Administrador inicial criado.", map[string]interface{}{"email": registration.Email})
	return true, nil
}

func (s *UserService) create(ctx context.Context, registration domain.UserRegistration, role domain.UserRole) (domain.User, error) {
	name := strings.TrimSpace(registration.Name)
	email := strings.ToLower(strings.TrimSpace(registration.Email))

	if name == "" || email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Nome, email e senha são obrigatórios.")
	}
	if !validate.MaxLen(name, 100) {
		return domain.User{}, apperror.NewValidationError("O nome deve ter no máximo 100 caracteres.")
	}
	if !validate.Email(email) || !validate.MaxLen(email, 100) {
		return domain.User{}, apperror.NewValidationError("Email inválido.")
	}
	if len(registration.Password) < MinPasswordLength {
		return domain.User{}, apperror.NewValidationError("A senha deve ter pelo menos 6 caracteres.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	user, err := s.UserRepo.Save(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	})
	if err != nil {
		// ConflictError (e-mail duplicado) já vem tipado do repositório.
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": string(user.Role)})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return domain.AuthResult{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira 401 para não revelar quais e-mails existem.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.AuthResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("Tentativa de login com senha incorreta.", map[string]interface{}{"user_id": user.ID})
		return domain.AuthResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return domain.AuthResult{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return domain.AuthResult{Token: tokenString, User: user}, nil
}

// Me devolve o usuário dono da identidade autenticada.
func (s *UserService) Me(ctx context.Context, userID string) (domain.User, error) {
	if !validate.UUID(userID) {
		return domain.User{}, apperror.NewUnauthorizedError("Identidade inválida.")
	}
	return s.UserRepo.FindByID(ctx, userID)
}
