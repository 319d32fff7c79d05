package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
	"github.com/settlelinecompany-commits/shipping-aggregator/pkg/csvorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== 依赖接口 ====================

// RateGenerator 候选运单生成器
type RateGenerator interface {
	GenerateCandidateShipments(orderID int64, totalWeightLb float64) []model.Shipment
}

// ==================== ImportService CSV 批量导入 ====================

// ImportService CSV 批量导入服务
// 流程：解析 → 逐单事务落库（客户 upsert → 订单 → 明细）→ 生成候选运单 → 汇总
// 订单之间严格串行、互不影响；运单写入失败只警告不计败
type ImportService struct {
	uow          *repository.ImportUnitOfWork
	shipmentRepo repository.ShipmentRepository
	rates        RateGenerator
}

// NewImportService 创建导入服务
func NewImportService(
	uow *repository.ImportUnitOfWork,
	shipmentRepo repository.ShipmentRepository,
	rates RateGenerator,
) *ImportService {
	return &ImportService{
		uow:          uow,
		shipmentRepo: shipmentRepo,
		rates:        rates,
	}
}

// ImportCSV 导入一份上传的 CSV
// 批次致命错误（文件类型 / 语法 / 缺列）以 error 返回；
// 订单级失败收敛在返回的报告里，不中断批次
func (s *ImportService) ImportCSV(ctx context.Context, filename string, content []byte) (*dto.ImportReport, error) {
	result, err := csvorder.Parse(filename, content)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()[:8]
	log.Printf("[ImportService] batch=%s 开始导入: 文件=%s 订单=%d 行级错误=%d",
		batchID, filename, result.Total(), len(result.RowErrors))

	successful := 0
	failed := 0
	importErrors := make([]string, 0)

	// 行级错误（缺订单号的散行）不属于任何订单，只进错误列表
	importErrors = append(importErrors, result.RowErrors...)

	// 解析阶段就失败的订单组直接计败
	for _, f := range result.Failed {
		failed++
		importErrors = append(importErrors, fmt.Sprintf("Order %s: %s", f.OrderNumber, f.Err.Message))
	}

	// 按发现顺序逐单落库
	for i := range result.Orders {
		parsed := &result.Orders[i]
		if err := s.applyOrder(ctx, batchID, parsed); err != nil {
			failed++
			importErrors = append(importErrors, fmt.Sprintf("Order %s: %v", parsed.Order.OrderNumber, err))
			continue
		}
		successful++
	}

	total := result.Total()
	report := &dto.ImportReport{
		Success: failed == 0,
		Message: fmt.Sprintf("Processed %d orders: %d successful, %d failed", total, successful, failed),
		Results: dto.ImportResults{
			Total:      total,
			Successful: successful,
			Failed:     failed,
			Errors:     importErrors,
		},
	}

	log.Printf("[ImportService] batch=%s 导入完成: %s", batchID, report.Message)
	return report, nil
}

// applyOrder 落库单个订单
// 客户 upsert、订单插入、明细插入在一个事务内；候选运单生成在事务外
func (s *ImportService) applyOrder(ctx context.Context, batchID string, parsed *csvorder.ParsedOrder) error {
	var orderID int64

	err := s.uow.Transaction(ctx, func(uow *repository.ImportUnitOfWork) error {
		// 1. 客户 upsert（以 email 为键，后写覆盖）
		customer, err := uow.Customers.Upsert(ctx, customerFromCSV(&parsed.Customer))
		if err != nil {
			return fmt.Errorf("Customer error: %v", err)
		}

		// 2. 订单插入，订单号重复提前报出可读的错误
		if _, err := uow.Orders.GetByOrderNumber(ctx, parsed.Order.OrderNumber); err == nil {
			return fmt.Errorf("Order error: order number already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("Order error: %v", err)
		}
		order := orderFromCSV(&parsed.Order, customer.ID)
		if err := uow.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("Order error: %v", err)
		}
		orderID = order.ID

		// 3. 明细批量插入
		if len(parsed.Items) > 0 {
			items := make([]model.OrderItem, len(parsed.Items))
			for i, item := range parsed.Items {
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
				return fmt.Errorf("Items error: %v", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[ImportService] batch=%s 订单 %s 导入失败: %v", batchID, parsed.Order.OrderNumber, err)
		return err
	}

	// 4. 候选运单：失败只警告，不影响订单成功
	shipments := s.rates.GenerateCandidateShipments(orderID, parsed.Order.TotalWeightLb)
	if len(shipments) > 0 {
		if err := s.shipmentRepo.CreateBatch(ctx, shipments); err != nil {
			log.Printf("[ImportService] batch=%s 订单 %s 运单写入失败（忽略）: %v",
				batchID, parsed.Order.OrderNumber, err)
		}
	}

	log.Printf("[ImportService] batch=%s 订单 %s 导入成功: 明细=%d 候选运单=%d",
		batchID, parsed.Order.OrderNumber, len(parsed.Items), len(shipments))
	return nil
}

// ==================== 解析结果 → 模型 ====================

func customerFromCSV(data *csvorder.CustomerData) *model.Customer {
	return &model.Customer{
		Name:        data.Name,
		Company:     data.Company,
		Email:       data.Email,
		Phone:       data.Phone,
		StreetLine1: data.StreetLine1,
		StreetLine2: data.StreetLine2,
		City:        data.City,
		State:       data.State,
		Zip:         data.Zip,
		Country:     data.Country,
	}
}

func orderFromCSV(data *csvorder.OrderData, customerID int64) *model.Order {
	return &model.Order{
		OrderNumber:   data.OrderNumber,
		OrderDate:     data.OrderDate,
		CustomerID:    customerID,
		Status:        data.Status,
		TotalWeightLb: data.TotalWeightLb,
		TotalItems:    data.TotalItems,
		OrderCurrency: data.OrderCurrency,
		OrderAmount:   data.OrderAmount,
	}
}
