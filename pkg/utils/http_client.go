package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAPIClient 创建配置好超时、重试和鉴权头的 Resty 客户端
// 它是对外部服务（物流网关等）统一的网络请求入口
func NewAPIClient(baseURL, apiKey string, timeout time.Duration) *resty.Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetHeader("User-Agent", "Shipping-Aggregator/1.0")

	if apiKey != "" {
		client.SetHeader("Authorization", "Token "+apiKey)
	}

	return client
}
