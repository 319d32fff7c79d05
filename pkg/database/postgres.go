package database

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立 PostgreSQL 连接并迁移给定模型
// 连接池参数可通过 DB_MAX_IDLE_CONNS / DB_MAX_OPEN_CONNS /
// DB_CONN_MAX_LIFETIME_MINUTES 覆盖默认值
func InitDB(dsn string, models ...interface{}) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Info 级别打印 SQL，方便排查导入批次里的慢查询
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("[database] 连接 PostgreSQL 失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("[database] 获取连接池失败: %v", err)
	}

	// CSV 导入是逐单短事务，连接数主要受并发上传量影响
	sqlDB.SetMaxIdleConns(envInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(envInt("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(time.Duration(envInt("DB_CONN_MAX_LIFETIME_MINUTES", 60)) * time.Minute)

	log.Println("[database] shipping-aggregator 数据库连接就绪")

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("[database] 结构迁移失败: %v", err)
		}
		log.Printf("[database] 已迁移 %d 个模型", len(models))
	}

	return db
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
