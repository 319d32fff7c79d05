package repository

import (
	"context"
	"errors"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"

	"gorm.io/gorm"
)

// ==================== CustomerFilter 过滤条件 ====================

// CustomerFilter 客户过滤条件
type CustomerFilter struct {
	Search string // 匹配 name / email / company
	Limit  int
}

// ==================== CustomerRepository 客户仓库 ====================

// CustomerRepository 客户仓库接口
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error

	// Upsert 以 email 为键插入或整体覆盖可变字段（last-write-wins）
	Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓库
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error) {
	var customers []model.Customer

	db := r.db.WithContext(ctx).Model(&model.Customer{})
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		db = db.Where("name LIKE ? OR email LIKE ? OR company LIKE ?", keyword, keyword, keyword)
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	err := db.Order("created_at DESC").Limit(filter.Limit).Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	existing, err := r.GetByEmail(ctx, customer.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// 不存在，新建
		if err := r.Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	// 已存在，用最新提交覆盖可变字段
	existing.ApplyUpdate(customer)
	if err := r.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
