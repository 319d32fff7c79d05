package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== ImportUnitOfWork 导入工作单元 ====================

// ImportUnitOfWork 批量导入的工作单元（每个订单一个事务）
// 事务范围：客户 upsert → 订单插入 → 订单项批量插入
// 运单生成不在事务内，失败只记警告
type ImportUnitOfWork struct {
	db        *gorm.DB
	Customers CustomerRepository
	Orders    OrderRepository
	Items     OrderItemRepository
	Shipments ShipmentRepository
}

// NewImportUnitOfWork 创建工作单元
func NewImportUnitOfWork(db *gorm.DB) *ImportUnitOfWork {
	return &ImportUnitOfWork{
		db:        db,
		Customers: NewCustomerRepository(db),
		Orders:    NewOrderRepository(db),
		Items:     NewOrderItemRepository(db),
		Shipments: NewShipmentRepository(db),
	}
}

// Transaction 在一个数据库事务内执行 fn
func (u *ImportUnitOfWork) Transaction(ctx context.Context, fn func(uow *ImportUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &ImportUnitOfWork{
			db:        tx,
			Customers: NewCustomerRepository(tx),
			Orders:    NewOrderRepository(tx),
			Items:     NewOrderItemRepository(tx),
			Shipments: NewShipmentRepository(tx),
		}
		return fn(txUow)
	})
}
