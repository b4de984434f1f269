package service

import (
	"context"
	"fmt"
	"strings"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"

	"go.uber.org/zap"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *model.Customer) error
	UpdateCustomer(ctx context.Context, id uint, req *CustomerUpdate) (bool, error)
	DeleteCustomer(ctx context.Context, id uint) error
	GetAllCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomerByID(ctx context.Context, id uint) (*model.Customer, error)
	SaleCount(ctx context.Context, id uint) (int64, error)
}

// CustomerUpdate changes only the fields that are set; an empty optional
// field clears the stored value
type CustomerUpdate struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

type customerService struct {
	customerRepo repository.CustomerRepository
	log          *zap.Logger
}

func NewCustomerService(cRepo repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		customerRepo: cRepo,
		log:          log.Named("customer"),
	}
}

// NormalizeCustomer trims the fields and turns empty optionals into NULLs
func NormalizeCustomer(c *model.Customer) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = optional(c.Phone)
	c.Email = optional(c.Email)
	c.Address = optional(c.Address)
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *customerService) CreateCustomer(ctx context.Context, req *model.Customer) error {
	NormalizeCustomer(req)
	if err := validate(req); err != nil {
		return err
	}
	if err := s.customerRepo.Create(ctx, req); err != nil {
		return translate(err, "customer")
	}
	s.log.Info("customer created", zap.Uint("customer_id", req.ID))
	return nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uint, req *CustomerUpdate) (bool, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return false, translate(err, "customer")
	}

	fields := map[string]interface{}{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		customer.Name = strings.TrimSpace(*req.Name)
		fields["name"] = customer.Name
	}
	if req.Phone != nil {
		customer.Phone = optional(req.Phone)
		fields["phone"] = customer.Phone
	}
	if req.Email != nil {
		customer.Email = optional(req.Email)
		fields["email"] = customer.Email
	}
	if req.Address != nil {
		customer.Address = optional(req.Address)
		fields["address"] = customer.Address
	}
	if len(fields) == 0 {
		return false, nil
	}
	if err := validate(customer); err != nil {
		return false, err
	}

	if err := s.customerRepo.Update(ctx, id, fields); err != nil {
		return false, translate(err, "customer")
	}
	s.log.Info("customer updated", zap.Uint("customer_id", id))
	return true, nil
}

// DeleteCustomer refuses to remove a customer that appears on any sale
func (s *customerService) DeleteCustomer(ctx context.Context, id uint) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return translate(err, "customer")
	}

	sales, err := s.customerRepo.CountSales(ctx, id)
	if err != nil {
		return err
	}
	if sales > 0 {
		return fmt.Errorf("cannot delete customer '%s' because they have %d associated sales: %w", customer.Name, sales, ErrReferencedByHistory)
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return translate(err, "customer")
	}
	s.log.Info("customer deleted", zap.Uint("customer_id", id))
	return nil
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

func (s *customerService) GetCustomerByID(ctx context.Context, id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "customer")
	}
	return customer, nil
}

// SaleCount lets the shell explain a blocked delete before asking to confirm
func (s *customerService) SaleCount(ctx context.Context, id uint) (int64, error) {
	return s.customerRepo.CountSales(ctx, id)
}
