package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
)

// ==================== TrackingSimTask 物流跟踪模拟任务 ====================

// TrackingSimTask 定时推进已购面单的运输状态
// 没有真实物流商接入，这里模拟包裹移动：
// purchased → in_transit → delivered，订单随之进入已签收
type TrackingSimTask struct {
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.OrderRepository
	cron         *cron.Cron

	transitDelay  time.Duration // purchased 停留多久进入运输中
	deliveryDelay time.Duration // in_transit 停留多久签收
	batchLimit    int
}

// NewTrackingSimTask 创建跟踪模拟任务
func NewTrackingSimTask(
	shipmentRepo repository.ShipmentRepository,
	orderRepo repository.OrderRepository,
) *TrackingSimTask {
	return &TrackingSimTask{
		shipmentRepo:  shipmentRepo,
		orderRepo:     orderRepo,
		cron:          cron.New(),
		transitDelay:  1 * time.Hour,
		deliveryDelay: 24 * time.Hour,
		batchLimit:    200,
	}
}

// Start 启动定时任务
func (t *TrackingSimTask) Start() {
	// 每10分钟推进一轮
	_, err := t.cron.AddFunc("@every 10m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.advanceJob(ctx)
	})
	if err != nil {
		log.Fatalf("[TrackingSimTask] 无法启动跟踪模拟任务: %v", err)
	}

	t.cron.Start()
	log.Println("[TrackingSimTask] 跟踪模拟任务已启动")
}

// Stop 停止定时任务
func (t *TrackingSimTask) Stop() {
	t.cron.Stop()
}

// advanceJob 推进一轮状态
func (t *TrackingSimTask) advanceJob(ctx context.Context) {
	moved, err := t.AdvancePurchased(ctx)
	if err != nil {
		log.Printf("[TrackingSimTask] 推进运输中失败: %v", err)
	}
	delivered, err := t.AdvanceInTransit(ctx)
	if err != nil {
		log.Printf("[TrackingSimTask] 推进签收失败: %v", err)
	}
	if moved > 0 || delivered > 0 {
		log.Printf("[TrackingSimTask] 本轮推进: 运输中=%d 已签收=%d", moved, delivered)
	}
}

// AdvancePurchased 把停留超时的 purchased 运单推进到 in_transit
func (t *TrackingSimTask) AdvancePurchased(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-t.transitDelay)
	shipments, err := t.shipmentRepo.GetByStatusBefore(ctx, model.ShipmentStatusPurchased, cutoff, t.batchLimit)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, s := range shipments {
		err := t.shipmentRepo.UpdateFields(ctx, s.ID, map[string]interface{}{
			"status": model.ShipmentStatusInTransit,
		})
		if err != nil {
			log.Printf("[TrackingSimTask] 运单 %d 推进失败: %v", s.ID, err)
			continue
		}
		moved++
	}
	return moved, nil
}

// AdvanceInTransit 把停留超时的 in_transit 运单推进到 delivered
// 订单状态随之进入已签收
func (t *TrackingSimTask) AdvanceInTransit(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-t.deliveryDelay)
	shipments, err := t.shipmentRepo.GetByStatusBefore(ctx, model.ShipmentStatusInTransit, cutoff, t.batchLimit)
	if err != nil {
		return 0, err
	}

	delivered := 0
	now := time.Now()
	for _, s := range shipments {
		err := t.shipmentRepo.UpdateFields(ctx, s.ID, map[string]interface{}{
			"status":         model.ShipmentStatusDelivered,
			"delivered_date": now,
		})
		if err != nil {
			log.Printf("[TrackingSimTask] 运单 %d 签收失败: %v", s.ID, err)
			continue
		}
		if err := t.orderRepo.UpdateStatus(ctx, s.OrderID, model.OrderStatusDelivered); err != nil {
			log.Printf("[TrackingSimTask] 订单 %d 状态更新失败: %v", s.OrderID, err)
		}
		delivered++
	}
	return delivered, nil
}
