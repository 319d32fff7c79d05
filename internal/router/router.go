package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/controller"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Order    *controller.OrderController
	Customer *controller.CustomerController
	Shipment *controller.ShipmentController
	Import   *controller.ImportController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	{
		// orders 订单
		orders := api.Group("/orders")
		{
			// GET /api/orders
			orders.GET("", ctls.Order.List)
			orders.POST("", ctls.Order.Create)

			// CSV 批量导入（带上传冷却）
			orders.POST("/upload-csv", middleware.UploadCooldown(3*time.Second), ctls.Import.UploadCSV)
			orders.GET("/csv-template", ctls.Import.DownloadTemplate)

			orders.GET("/:id", ctls.Order.GetByID)
			orders.PUT("/:id", ctls.Order.Update)
			orders.DELETE("/:id", ctls.Order.Delete)
		}

		// customers 客户
		customers := api.Group("/customers")
		{
			customers.GET("", ctls.Customer.List)
			customers.POST("", ctls.Customer.Create)
		}

		// shipments 运单
		shipments := api.Group("/shipments")
		{
			shipments.GET("", ctls.Shipment.List)
			shipments.POST("", ctls.Shipment.Create)
			shipments.POST("/:id/purchase", ctls.Shipment.Purchase)
		}

		// dashboard 仪表盘
		api.GET("/dashboard/stats", ctls.Order.Stats)
	}

	return r
}
