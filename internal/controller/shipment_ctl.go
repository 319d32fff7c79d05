package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/service"
)

// ShipmentController 运单控制器
type ShipmentController struct {
	svc *service.ShipmentService
}

// NewShipmentController 创建运单控制器
func NewShipmentController(svc *service.ShipmentService) *ShipmentController {
	return &ShipmentController{svc: svc}
}

// ==================== 运单查询与创建 ====================

// List 运单列表
// @Summary 运单列表
// @Tags Shipment (运单管理)
// @Produce json
// @Param order_id query int false "按订单过滤"
// @Param status query string false "按状态过滤"
// @Router /api/shipments [get]
func (c *ShipmentController) List(ctx *gin.Context) {
	var req dto.ListShipmentsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	shipments, err := c.svc.List(ctx, repository.ShipmentFilter{
		OrderID: req.OrderID,
		Status:  req.Status,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": shipments})
}

// Create 手工创建运单
// @Summary 创建运单
// @Tags Shipment (运单管理)
// @Accept json
// @Produce json
// @Param request body dto.CreateShipmentRequest true "运单参数"
// @Router /api/shipments [post]
func (c *ShipmentController) Create(ctx *gin.Context) {
	var req dto.CreateShipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	shipment, err := c.svc.Create(ctx, &req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": shipment})
}

// ==================== 面单购买 ====================

// Purchase 购买面单
// @Summary 购买面单
// @Description 仅允许 pending 状态购买；成功后写入运单号与面单地址，父订单进入已发货
// @Tags Shipment (运单管理)
// @Produce json
// @Param id path int true "运单 ID"
// @Router /api/shipments/{id}/purchase [post]
func (c *ShipmentController) Purchase(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid shipment ID"})
		return
	}

	shipment, err := c.svc.Purchase(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrShipmentAlreadyPurchased) {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Shipment already purchased"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Shipment not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    shipment,
		"message": "Shipping label purchased successfully",
	})
}
