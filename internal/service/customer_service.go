package service

import (
	"context"
	"fmt"

	"stockdash/internal/dto"
	"stockdash/internal/model"
	"stockdash/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CustomerService struct {
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	cache     DashboardInvalidator
	log       zerolog.Logger
}

func NewCustomerService(
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	cache DashboardInvalidator,
	log zerolog.Logger,
) *CustomerService {
	return &CustomerService{customers: customers, sales: sales, cache: cache, log: log}
}

func (s *CustomerService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateDashboard(ctx)
	}
}

func (s *CustomerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.log.Info().Str("customer_id", customer.ID.String()).Str("name", customer.Name).Msg("customer created")
	s.invalidate(ctx)
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "customer")
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.customers.List(ctx, filter)
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*model.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "customer")
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.Address != nil {
		customer.Address = req.Address
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	s.log.Info().Str("customer_id", id.String()).Msg("customer updated")
	return customer, nil
}

// Delete refuses to remove customers with sales on record: their rows are
// referenced by the sales history and the dashboard aggregates.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		return mapNotFound(err, "customer")
	}

	saleCount, err := s.sales.CountByCustomerID(ctx, id)
	if err != nil {
		return err
	}
	if saleCount > 0 {
		return fmt.Errorf("customer has %d sales on record: %w", saleCount, ErrInvalidArgument)
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("customer_id", id.String()).Msg("customer deleted")
	s.invalidate(ctx)
	return nil
}
