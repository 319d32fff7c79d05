package repository

import (
	"context"
	"time"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"

	"gorm.io/gorm"
)

// ==================== ShipmentFilter 过滤条件 ====================

// ShipmentFilter 运单过滤条件
type ShipmentFilter struct {
	OrderID int64
	Status  string
}

// ==================== ShipmentRepository 运单仓库 ====================

// ShipmentRepository 运单仓库接口
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *model.Shipment) error
	CreateBatch(ctx context.Context, shipments []model.Shipment) error
	GetByID(ctx context.Context, id int64) (*model.Shipment, error)
	List(ctx context.Context, filter ShipmentFilter) ([]model.Shipment, error)
	Update(ctx context.Context, shipment *model.Shipment) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteByOrderID(ctx context.Context, orderID int64) error

	// 跟踪模拟任务用
	GetByStatusBefore(ctx context.Context, status string, before time.Time, limit int) ([]model.Shipment, error)
}

type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository 创建运单仓库
func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &shipmentRepository{db: db}
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *model.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *shipmentRepository) CreateBatch(ctx context.Context, shipments []model.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(shipments, 100).Error
}

func (r *shipmentRepository) GetByID(ctx context.Context, id int64) (*model.Shipment, error) {
	var shipment model.Shipment
	err := r.db.WithContext(ctx).First(&shipment, id).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) List(ctx context.Context, filter ShipmentFilter) ([]model.Shipment, error) {
	var shipments []model.Shipment

	db := r.db.WithContext(ctx).Model(&model.Shipment{})
	if filter.OrderID > 0 {
		db = db.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	err := db.Order("created_at DESC").Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *model.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

func (r *shipmentRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Shipment{}).Where("id = ?", id).Updates(fields).Error
}

func (r *shipmentRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.Shipment{}).Error
}

func (r *shipmentRepository) GetByStatusBefore(ctx context.Context, status string, before time.Time, limit int) ([]model.Shipment, error) {
	var shipments []model.Shipment
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Where("updated_at < ?", before).
		Limit(limit).
		Find(&shipments).Error
	return shipments, err
}
