package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glamify/internal/domain"
	"glamify/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

// AuthService authenticates admin credentials and issues session tokens
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Principal, error)
	Login(ctx context.Context, email, password string) (token string, expiresAt time.Time, principal *domain.Principal, err error)
	Session(tokenString string) (*domain.Session, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    *TokenIssuer
	logger    *zap.Logger
	dummyHash []byte
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, tokens *TokenIssuer, logger *zap.Logger) AuthService {
	// Compared against when the account does not exist so the miss costs
	// the same as a wrong password
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("glamify-unused-password"), BcryptCost)

	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummyHash,
	}
}

// Authenticate checks email and password against an admin account. Every
// failure is an *domain.AuthError that matches domain.ErrAuthenticationFailed.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*domain.Principal, error) {
	if email == "" || password == "" {
		return nil, s.fail(email, domain.AuthReasonInvalidCredentials, errors.New("missing email or password"))
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, s.fail(email, domain.AuthReasonUserNotFound, nil)
		}
		return nil, s.fail(email, domain.AuthReasonStoreFailure, err)
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))

	if !user.IsAdmin {
		return nil, s.fail(email, domain.AuthReasonNotAuthorized, nil)
	}

	if passwordErr != nil {
		return nil, s.fail(email, domain.AuthReasonInvalidCredentials, passwordErr)
	}

	return domain.PrincipalFromUser(user), nil
}

// Login authenticates and signs a session token for the principal
func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Principal, error) {
	principal, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Admin signed in", zap.String("user_id", principal.ID.String()))

	return token, expiresAt, principal, nil
}

// Session decodes a session token without touching the user store
func (s *authService) Session(tokenString string) (*domain.Session, error) {
	return s.tokens.Parse(tokenString)
}

func (s *authService) fail(email string, reason domain.AuthReason, cause error) error {
	fields := []zap.Field{
		zap.String("reason", string(reason)),
		zap.String("email", email),
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}

	if reason == domain.AuthReasonStoreFailure {
		s.logger.Error("Authentication failed", fields...)
	} else {
		s.logger.Warn("Authentication failed", fields...)
	}

	return &domain.AuthError{Reason: reason, Err: cause}
}
