package service

import (
	"context"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
)

// ==================== CustomerService 客户服务 ====================

// CustomerService 客户服务
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// List 客户列表
func (s *CustomerService) List(ctx context.Context, filter repository.CustomerFilter) ([]model.Customer, error) {
	return s.customerRepo.List(ctx, filter)
}

// Create 新建客户
func (s *CustomerService) Create(ctx context.Context, req *dto.CustomerPayload) (*model.Customer, error) {
	country := req.Country
	if country == "" {
		country = "US"
	}

	customer := &model.Customer{
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		StreetLine1: req.StreetLine1,
		StreetLine2: req.StreetLine2,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Country:     country,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
