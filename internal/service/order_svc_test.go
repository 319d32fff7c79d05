package service

import (
	"context"
	"math"
	"testing"

	"gorm.io/gorm"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
)

// ==================== 辅助函数 ====================

func setupOrderTest(t *testing.T) (*gorm.DB, *OrderService) {
	db := setupImportTestDB(t)
	svc := NewOrderService(
		repository.NewImportUnitOfWork(db),
		repository.NewOrderRepository(db),
	)
	return db, svc
}

func sampleCreateOrderRequest(orderNumber string) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Order: dto.OrderPayload{
			OrderNumber:   orderNumber,
			OrderDate:     "2024-01-15",
			TotalWeightLb: 1.2,
			OrderAmount:   51.98,
		},
		Customer: dto.CustomerPayload{
			Name:        "John Doe",
			Email:       "john@acme.com",
			Phone:       "555-0123",
			StreetLine1: "123 Main St",
			City:        "New York",
			State:       "NY",
			Zip:         "10001",
			Country:     "US",
		},
		Items: []dto.OrderItemPayload{
			{Title: "Widget", SKU: "W-1", Quantity: 2, WeightLb: 0.5, Price: 25.99},
		},
	}
}

// ==================== 手工建单 ====================

func TestOrderCreate(t *testing.T) {
	_, svc := setupOrderTest(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleCreateOrderRequest("ORD-1"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if order.Status != model.OrderStatusPending {
		t.Errorf("默认状态 = %q, want pending", order.Status)
	}
	if order.OrderCurrency != "USD" {
		t.Errorf("默认币种 = %q, want USD", order.OrderCurrency)
	}
	// total_items 缺省时由明细数量求和
	if order.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", order.TotalItems)
	}
	if order.Customer == nil || order.Customer.Email != "john@acme.com" {
		t.Errorf("关联客户未预加载: %+v", order.Customer)
	}
	if len(order.Items) != 1 {
		t.Errorf("明细数 = %d, want 1", len(order.Items))
	}
}

func TestOrderCreate_InvalidStatus(t *testing.T) {
	_, svc := setupOrderTest(t)

	req := sampleCreateOrderRequest("ORD-1")
	req.Order.Status = "teleported"
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatal("非法状态应报错")
	}
}

func TestOrderCreate_ReusesCustomerByEmail(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleCreateOrderRequest("ORD-1")); err != nil {
		t.Fatalf("首单失败: %v", err)
	}

	req := sampleCreateOrderRequest("ORD-2")
	req.Customer.Name = "Johnny Doe"
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("次单失败: %v", err)
	}

	var count int64
	db.Model(&model.Customer{}).Count(&count)
	if count != 1 {
		t.Errorf("客户数 = %d, want 1", count)
	}

	var customer model.Customer
	db.Where("email = ?", "john@acme.com").First(&customer)
	if customer.Name != "Johnny Doe" {
		t.Errorf("客户名 = %q, want Johnny Doe（后写覆盖）", customer.Name)
	}
}

// ==================== 编辑与删除 ====================

func TestOrderUpdate(t *testing.T) {
	_, svc := setupOrderTest(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleCreateOrderRequest("ORD-1"))
	if err != nil {
		t.Fatalf("建单失败: %v", err)
	}

	status := model.OrderStatusProcessing
	amount := 99.99
	updated, err := svc.Update(ctx, order.ID, &dto.UpdateOrderRequest{
		Status:      &status,
		OrderAmount: &amount,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != model.OrderStatusProcessing {
		t.Errorf("状态 = %q, want processing", updated.Status)
	}
	if updated.OrderAmount != 99.99 {
		t.Errorf("金额 = %v, want 99.99", updated.OrderAmount)
	}
	// 未提交的字段保持不变
	if updated.OrderDate != "2024-01-15" {
		t.Errorf("日期被意外改写: %q", updated.OrderDate)
	}
}

func TestOrderUpdate_Validation(t *testing.T) {
	_, svc := setupOrderTest(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleCreateOrderRequest("ORD-1"))
	if err != nil {
		t.Fatalf("建单失败: %v", err)
	}

	bad := "teleported"
	if _, err := svc.Update(ctx, order.ID, &dto.UpdateOrderRequest{Status: &bad}); err == nil {
		t.Error("非法状态应报错")
	}

	zero := 0.0
	if _, err := svc.Update(ctx, order.ID, &dto.UpdateOrderRequest{TotalWeightLb: &zero}); err == nil {
		t.Error("重量为 0 应报错")
	}
}

func TestOrderDelete(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleCreateOrderRequest("ORD-1"))
	if err != nil {
		t.Fatalf("建单失败: %v", err)
	}
	// 挂一条运单，删除时应一并清理
	db.Create(&model.Shipment{OrderID: order.ID, Carrier: model.CarrierUPS, Status: model.ShipmentStatusPending})

	if err := svc.Delete(ctx, order.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var orderCount, itemCount, shipmentCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	db.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	db.Model(&model.Shipment{}).Where("order_id = ?", order.ID).Count(&shipmentCount)
	if orderCount != 0 || itemCount != 0 || shipmentCount != 0 {
		t.Errorf("orders=%d items=%d shipments=%d, want 0/0/0", orderCount, itemCount, shipmentCount)
	}
}

// ==================== 列表与统计 ====================

func TestOrderList_FilterAndPaginate(t *testing.T) {
	_, svc := setupOrderTest(t)
	ctx := context.Background()

	for _, n := range []string{"ORD-1", "ORD-2", "ORD-3"} {
		if _, err := svc.Create(ctx, sampleCreateOrderRequest(n)); err != nil {
			t.Fatalf("建单 %s 失败: %v", n, err)
		}
	}

	orders, total, err := svc.List(ctx, repository.OrderFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(orders) != 2 {
		t.Errorf("页大小 = %d, want 2", len(orders))
	}

	// status=all 等价于不过滤
	_, total, err = svc.List(ctx, repository.OrderFilter{Status: "all", Page: 1, PageSize: 25})
	if err != nil {
		t.Fatalf("List(all) error = %v", err)
	}
	if total != 3 {
		t.Errorf("status=all total = %d, want 3", total)
	}

	// 订单号搜索
	orders, _, err = svc.List(ctx, repository.OrderFilter{Keyword: "ORD-2", Page: 1, PageSize: 25})
	if err != nil {
		t.Fatalf("List(search) error = %v", err)
	}
	if len(orders) != 1 || orders[0].OrderNumber != "ORD-2" {
		t.Errorf("搜索结果错误: %+v", orders)
	}
}

func TestOrderGetStats(t *testing.T) {
	_, svc := setupOrderTest(t)
	ctx := context.Background()

	order1, err := svc.Create(ctx, sampleCreateOrderRequest("ORD-1"))
	if err != nil {
		t.Fatalf("建单失败: %v", err)
	}
	if _, err := svc.Create(ctx, sampleCreateOrderRequest("ORD-2")); err != nil {
		t.Fatalf("建单失败: %v", err)
	}

	shipped := model.OrderStatusShipped
	if _, err := svc.Update(ctx, order1.ID, &dto.UpdateOrderRequest{Status: &shipped}); err != nil {
		t.Fatalf("改状态失败: %v", err)
	}

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", stats.TotalOrders)
	}
	if math.Abs(stats.TotalAmount-103.96) > 0.001 {
		t.Errorf("TotalAmount = %v, want 103.96", stats.TotalAmount)
	}
	if stats.PendingOrders != 1 || stats.ShippedOrders != 1 {
		t.Errorf("pending=%d shipped=%d, want 1/1", stats.PendingOrders, stats.ShippedOrders)
	}
}
