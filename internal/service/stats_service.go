package service

import (
	"context"

	"glamify/internal/domain"
	"glamify/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StatsService computes the admin dashboard counters
type StatsService interface {
	Get(ctx context.Context) domain.Stats
}

type statsService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) StatsService {
	return &statsService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Get runs the three counts concurrently. If any of them fails the whole
// result is zero; the dashboard never sees an error.
func (s *statsService) Get(ctx context.Context) domain.Stats {
	var stats domain.Stats

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.productRepo.Count(gctx)
		stats.Products = n
		return err
	})
	g.Go(func() error {
		n, err := s.orderRepo.Count(gctx)
		stats.Orders = n
		return err
	})
	g.Go(func() error {
		n, err := s.userRepo.CountCustomers(gctx)
		stats.Customers = n
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("Failed to compute dashboard stats, returning zeros", zap.Error(err))
		return domain.Stats{}
	}

	return stats
}
