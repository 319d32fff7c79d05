package service

import (
	"context"
	"fmt"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
type OrderService struct {
	uow       *repository.ImportUnitOfWork
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(uow *repository.ImportUnitOfWork, orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{
		uow:       uow,
		orderRepo: orderRepo,
	}
}

// List 订单列表（带客户、明细、运单）
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.orderRepo.List(ctx, filter)
}

// GetByID 订单详情
func (s *OrderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return s.orderRepo.GetByIDWithRelations(ctx, id)
}

// Create 手工建单：客户 upsert + 订单 + 明细，一个事务
func (s *OrderService) Create(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	status := req.Order.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	if !model.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("无效的订单状态: %s", status)
	}
	currency := req.Order.OrderCurrency
	if currency == "" {
		currency = "USD"
	}

	totalItems := req.Order.TotalItems
	if totalItems == 0 {
		for _, item := range req.Items {
			totalItems += item.Quantity
		}
	}

	var created *model.Order
	err := s.uow.Transaction(ctx, func(uow *repository.ImportUnitOfWork) error {
		customer, err := uow.Customers.Upsert(ctx, &model.Customer{
			Name:        req.Customer.Name,
			Company:     req.Customer.Company,
			Email:       req.Customer.Email,
			Phone:       req.Customer.Phone,
			StreetLine1: req.Customer.StreetLine1,
			StreetLine2: req.Customer.StreetLine2,
			City:        req.Customer.City,
			State:       req.Customer.State,
			Zip:         req.Customer.Zip,
			Country:     req.Customer.Country,
		})
		if err != nil {
			return fmt.Errorf("客户写入失败: %w", err)
		}

		order := &model.Order{
			OrderNumber:   req.Order.OrderNumber,
			OrderDate:     req.Order.OrderDate,
			CustomerID:    customer.ID,
			Status:        status,
			TotalWeightLb: req.Order.TotalWeightLb,
			TotalItems:    totalItems,
			OrderCurrency: currency,
			OrderAmount:   req.Order.OrderAmount,
		}
		if err := uow.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("订单写入失败: %w", err)
		}

		if len(req.Items) > 0 {
			items := make([]model.OrderItem, len(req.Items))
			for i, item := range req.Items {
				items[i] = model.OrderItem{
					OrderID:  order.ID,
					Title:    item.Title,
					SKU:      item.SKU,
					Quantity: item.Quantity,
					WeightLb: item.WeightLb,
					Price:    item.Price,
				}
			}
			if err := uow.Items.CreateBatch(ctx, items); err != nil {
				return fmt.Errorf("明细写入失败: %w", err)
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByIDWithRelations(ctx, created.ID)
}

// Update 订单编辑（部分字段）
func (s *OrderService) Update(ctx context.Context, id int64, req *dto.UpdateOrderRequest) (*model.Order, error) {
	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.OrderDate != nil {
		fields["order_date"] = *req.OrderDate
	}
	if req.Status != nil {
		if !model.IsValidOrderStatus(*req.Status) {
			return nil, fmt.Errorf("无效的订单状态: %s", *req.Status)
		}
		fields["status"] = *req.Status
	}
	if req.TotalWeightLb != nil {
		if *req.TotalWeightLb <= 0 {
			return nil, fmt.Errorf("订单重量必须大于 0")
		}
		fields["total_weight_lb"] = *req.TotalWeightLb
	}
	if req.OrderAmount != nil {
		if *req.OrderAmount <= 0 {
			return nil, fmt.Errorf("订单金额必须大于 0")
		}
		fields["order_amount"] = *req.OrderAmount
	}

	if len(fields) > 0 {
		if err := s.orderRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.orderRepo.GetByIDWithRelations(ctx, id)
}

// Delete 删除订单及其明细、运单
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.uow.Transaction(ctx, func(uow *repository.ImportUnitOfWork) error {
		if err := uow.Items.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		// 运单随订单一起清理
		if err := uow.Shipments.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		return uow.Orders.Delete(ctx, id)
	})
}

// GetStats 仪表盘统计
func (s *OrderService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	stats, err := s.orderRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		TotalOrders:      stats.TotalOrders,
		TotalAmount:      stats.TotalAmount,
		PendingOrders:    stats.PendingOrders,
		ProcessingOrders: stats.ProcessingOrders,
		ShippedOrders:    stats.ShippedOrders,
		DeliveredOrders:  stats.DeliveredOrders,
		CancelledOrders:  stats.CancelledOrders,
	}, nil
}
