package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glamify/internal/domain"
	"glamify/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ProvisionResult reports what Provision did
type ProvisionResult string

const (
	ProvisionCreated   ProvisionResult = "created"
	ProvisionRecreated ProvisionResult = "recreated"
	ProvisionExists    ProvisionResult = "exists"
)

// AdminProvisioner creates admin accounts. It is the only path that sets the
// admin flag.
type AdminProvisioner struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewAdminProvisioner creates a new AdminProvisioner
func NewAdminProvisioner(userRepo repository.UserRepository, logger *zap.Logger) *AdminProvisioner {
	return &AdminProvisioner{userRepo: userRepo, logger: logger}
}

// Provision creates the admin account for email. Without reset an existing
// account is left alone; with reset it is deleted and created again.
func (p *AdminProvisioner) Provision(ctx context.Context, email, password, name string, reset bool) (ProvisionResult, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password are required")
	}

	existing, err := p.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, fmt.Errorf("failed to check existing admin: %w", err)
	}

	result := ProvisionCreated
	if existing != nil {
		if !reset {
			p.logger.Info("Admin user already exists", zap.String("email", email))
			return ProvisionExists, existing, nil
		}

		if err := p.userRepo.DeleteByEmail(ctx, email); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, fmt.Errorf("failed to delete existing admin: %w", err)
		}
		p.logger.Info("Deleted existing admin user", zap.String("email", email))
		result = ProvisionRecreated
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := p.userRepo.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to create admin: %w", err)
	}

	p.logger.Info("Admin user created", zap.String("email", email), zap.String("result", string(result)))

	return result, user, nil
}
