package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/api/dto"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/service"
)

// CustomerController 客户控制器
type CustomerController struct {
	svc *service.CustomerService
}

// NewCustomerController 创建客户控制器
func NewCustomerController(svc *service.CustomerService) *CustomerController {
	return &CustomerController{svc: svc}
}

// List 客户列表
// @Summary 客户列表
// @Tags Customer (客户管理)
// @Produce json
// @Param search query string false "名称 / 邮箱 / 公司搜索"
// @Param limit query int false "返回条数"
// @Router /api/customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	var req dto.ListCustomersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	customers, err := c.svc.List(ctx, repository.CustomerFilter{
		Search: req.Search,
		Limit:  req.Limit,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": customers})
}

// Create 新建客户
// @Summary 新建客户
// @Tags Customer (客户管理)
// @Accept json
// @Produce json
// @Param request body dto.CustomerPayload true "客户参数"
// @Router /api/customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerPayload
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	customer, err := c.svc.Create(ctx, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}
