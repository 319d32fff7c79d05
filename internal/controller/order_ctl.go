package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/service"
)

// OrderController 订单控制器
type OrderController struct {
	svc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// ==================== 订单列表与详情 ====================

// List 订单列表
// @Summary 订单列表
// @Description 支持状态过滤、关键字搜索与分页，附带客户、明细、运单
// @Tags Order (订单管理)
// @Produce json
// @Param status query string false "状态过滤"
// @Param search query string false "订单号 / 客户名搜索"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Router /api/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	var req dto.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	orders, total, err := c.svc.List(ctx, repository.OrderFilter{
		Status:   req.Status,
		Keyword:  req.Search,
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 25
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pages := (total + int64(limit) - 1) / int64(limit)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"pagination": dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// GetByID 订单详情
// @Summary 订单详情
// @Tags Order (订单管理)
// @Produce json
// @Param id path int true "订单 ID"
// @Router /api/orders/{id} [get]
func (c *OrderController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order ID"})
		return
	}

	order, err := c.svc.GetByID(ctx, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// ==================== 订单创建与编辑 ====================

// Create 手工建单
// @Summary 创建订单
// @Description 客户按 email upsert，订单与明细一并写入
// @Tags Order (订单管理)
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "订单参数"
// @Router /api/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	order, err := c.svc.Create(ctx, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// Update 订单编辑
// @Summary 编辑订单
// @Tags Order (订单管理)
// @Accept json
// @Produce json
// @Param id path int true "订单 ID"
// @Param request body dto.UpdateOrderRequest true "编辑字段"
// @Router /api/orders/{id} [put]
func (c *OrderController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order ID"})
		return
	}

	var req dto.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	order, err := c.svc.Update(ctx, id, &req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// Delete 删除订单
// @Summary 删除订单及其明细、运单
// @Tags Order (订单管理)
// @Produce json
// @Param id path int true "订单 ID"
// @Router /api/orders/{id} [delete]
func (c *OrderController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order ID"})
		return
	}

	if err := c.svc.Delete(ctx, id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}

// ==================== 仪表盘 ====================

// Stats 仪表盘统计
// @Summary 订单统计
// @Tags Dashboard (仪表盘)
// @Produce json
// @Router /api/dashboard/stats [get]
func (c *OrderController) Stats(ctx *gin.Context) {
	stats, err := c.svc.GetStats(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
