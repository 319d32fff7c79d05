package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
)

// ErrShipmentAlreadyPurchased 面单已购买，拒绝重复购买
var ErrShipmentAlreadyPurchased = errors.New("Shipment already purchased")

// ==================== ShipmentService 运单服务 ====================

// ShipmentService 运单服务
type ShipmentService struct {
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.OrderRepository
	labels       LabelProvider
}

// NewShipmentService 创建运单服务
func NewShipmentService(
	shipmentRepo repository.ShipmentRepository,
	orderRepo repository.OrderRepository,
	labels LabelProvider,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		labels:       labels,
	}
}

// List 运单列表
func (s *ShipmentService) List(ctx context.Context, filter repository.ShipmentFilter) ([]model.Shipment, error) {
	return s.shipmentRepo.List(ctx, filter)
}

// Create 手工创建运单
func (s *ShipmentService) Create(ctx context.Context, req *dto.CreateShipmentRequest) (*model.Shipment, error) {
	if !model.IsValidCarrier(req.Carrier) {
		return nil, fmt.Errorf("无效的物流商: %s", req.Carrier)
	}
	if _, err := s.orderRepo.GetByID(ctx, req.OrderID); err != nil {
		return nil, fmt.Errorf("订单不存在")
	}

	currency := req.RateCurrency
	if currency == "" {
		currency = "USD"
	}

	shipment := &model.Shipment{
		OrderID:      req.OrderID,
		Carrier:      req.Carrier,
		ServiceLevel: req.ServiceLevel,
		PackageType:  req.PackageType,
		WeightLb:     req.WeightLb,
		LengthIn:     req.LengthIn,
		WidthIn:      req.WidthIn,
		HeightIn:     req.HeightIn,
		RateAmount:   req.RateAmount,
		RateCurrency: currency,
		Status:       model.ShipmentStatusPending,
	}
	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Purchase 购买面单
// 只允许 pending → purchased 单向推进；成功后父订单进入已发货
func (s *ShipmentService) Purchase(ctx context.Context, id int64) (*model.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if shipment.Status == model.ShipmentStatusPurchased {
		return nil, ErrShipmentAlreadyPurchased
	}
	if !shipment.CanPurchase() {
		return nil, fmt.Errorf("Shipment cannot be purchased in status %q", shipment.Status)
	}

	label, err := s.labels.PurchaseLabel(ctx, shipment)
	if err != nil {
		return nil, fmt.Errorf("购买面单失败: %w", err)
	}

	now := time.Now()
	err = s.shipmentRepo.UpdateFields(ctx, id, map[string]interface{}{
		"tracking_number": label.TrackingNumber,
		"label_url":       label.LabelURL,
		"status":          model.ShipmentStatusPurchased,
		"shipped_date":    now,
	})
	if err != nil {
		return nil, err
	}

	// 父订单进入已发货
	if err := s.orderRepo.UpdateStatus(ctx, shipment.OrderID, model.OrderStatusShipped); err != nil {
		return nil, err
	}

	return s.shipmentRepo.GetByID(ctx, id)
}
