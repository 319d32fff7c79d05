package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== UploadRateLimiter 上传限流器 ====================

// UploadRateLimiter 上传冷却限流器
// 防止客户端频繁重复提交同一份 CSV 导致批量写库风暴
type UploadRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &UploadRateLimiter{}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "upload:10.0.0.1"
// interval: 冷却间隔
func (r *UploadRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// ==================== Gin 中间件 ====================

// UploadCooldown 以客户端 IP 为键的上传冷却中间件
func UploadCooldown(interval time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := "upload:" + ctx.ClientIP()
		result := globalLimiter.Check(key, interval)
		if !result.Allowed {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Too many uploads, retry in %.0fs", result.RetryAfter.Seconds()),
			})
			return
		}
		ctx.Next()
	}
}
