package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/controller"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/repository"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/router"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/service"
	"github.com/settlelinecompany-commits/shipping-aggregator/internal/task"
	"github.com/settlelinecompany-commits/shipping-aggregator/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Customer  repository.CustomerRepository
	Order     repository.OrderRepository
	OrderItem repository.OrderItemRepository
	Shipment  repository.ShipmentRepository
	ImportUow *repository.ImportUnitOfWork
}

// Services 服务集合
type Services struct {
	Order    *service.OrderService
	Customer *service.CustomerService
	Shipment *service.ShipmentService
	Import   *service.ImportService
	Rate     *service.RateService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=shipping_aggregator port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// Customer
		&model.Customer{},
		// Order
		&model.Order{}, &model.OrderItem{},
		// Shipment
		&model.Shipment{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 基础服务 --------
	rateSvc := service.NewRateService(time.Now().UnixNano())
	labels := initLabelProvider(rateSvc)

	// -------- 业务服务 --------
	services := &Services{
		Rate:     rateSvc,
		Order:    service.NewOrderService(repos.ImportUow, repos.Order),
		Customer: service.NewCustomerService(repos.Customer),
		Shipment: service.NewShipmentService(repos.Shipment, repos.Order, labels),
		Import:   service.NewImportService(repos.ImportUow, repos.Shipment, rateSvc),
	}

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:  repository.NewCustomerRepository(db),
		Order:     repository.NewOrderRepository(db),
		OrderItem: repository.NewOrderItemRepository(db),
		Shipment:  repository.NewShipmentRepository(db),
		ImportUow: repository.NewImportUnitOfWork(db),
	}
}

// initLabelProvider 初始化面单提供方
// 配置了外部网关就走网关，否则走本地替身
func initLabelProvider(rateSvc *service.RateService) service.LabelProvider {
	gatewayURL := getEnv("CARRIER_GATEWAY_URL", "")
	if gatewayURL == "" {
		return service.NewStubLabelProvider(rateSvc)
	}

	log.Printf("使用外部物流网关: %s", gatewayURL)
	return service.NewCarrierGatewayClient(service.CarrierGatewayConfig{
		BaseURL: gatewayURL,
		APIKey:  getEnv("CARRIER_GATEWAY_API_KEY", ""),
		Timeout: 30 * time.Second,
	})
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Order:    controller.NewOrderController(svc.Order),
		Customer: controller.NewCustomerController(svc.Customer),
		Shipment: controller.NewShipmentController(svc.Shipment),
		Import:   controller.NewImportController(svc.Import),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	if getEnv("TRACKING_TASK_ENABLED", "true") != "true" {
		log.Println("跟踪模拟任务已禁用")
		return
	}

	trackingTask := task.NewTrackingSimTask(
		deps.Repos.Shipment,
		deps.Repos.Order,
	)
	trackingTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
