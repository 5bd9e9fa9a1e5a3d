package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainidentity "github.com/tripshare/backend/internal/domain/identity"
	"github.com/tripshare/backend/internal/domain/shared"
	"github.com/tripshare/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login and token resolution.
type AuthService struct {
	userRepo   domainidentity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo domainidentity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "username is already taken")
	}

	user, err := domainidentity.NewUser(input.Username, input.Password, input.Mantra)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and signs a token. Username and password
// failures return the same error so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	invalidCredentials := shared.NewDomainError("UNAUTHORIZED", "Invalid username or password.")

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", input.Username))
		return nil, invalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &AuthResult{User: user, Token: token}, nil
}

// GetCurrentUser resolves the authenticated user ID to the full account.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*domainidentity.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
