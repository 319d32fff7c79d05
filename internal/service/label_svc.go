package service

import (
	"context"
	"fmt"
	"time"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/model"
	"github.com/settlelinecompany-commits/shipping-aggregator/pkg/utils"

	"github.com/go-resty/resty/v2"
)

// ==================== LabelProvider 面单提供方 ====================

// Label 购买面单的结果
type Label struct {
	TrackingNumber string
	LabelURL       string
}

// LabelProvider 面单提供方
// 默认是本地替身（StubLabelProvider），配置了物流网关时走远程
type LabelProvider interface {
	PurchaseLabel(ctx context.Context, shipment *model.Shipment) (*Label, error)
}

// ==================== StubLabelProvider 本地替身 ====================

// StubLabelProvider 本地生成运单号与面单地址
type StubLabelProvider struct {
	rates *RateService
}

// NewStubLabelProvider 创建本地面单替身
func NewStubLabelProvider(rates *RateService) *StubLabelProvider {
	return &StubLabelProvider{rates: rates}
}

func (p *StubLabelProvider) PurchaseLabel(_ context.Context, shipment *model.Shipment) (*Label, error) {
	trackingNumber := p.rates.GenerateTrackingNumber(shipment.Carrier)
	return &Label{
		TrackingNumber: trackingNumber,
		LabelURL:       fmt.Sprintf("https://labels.example.com/%s.pdf", trackingNumber),
	}, nil
}

// ==================== CarrierGatewayClient 物流网关客户端 ====================

// CarrierGatewayConfig 物流网关配置
type CarrierGatewayConfig struct {
	BaseURL string // e.g. http://localhost:5002
	APIKey  string
	Timeout time.Duration
}

// CarrierGatewayClient 外部物流网关客户端
// 面单由网关签发，响应格式与本地替身对齐
type CarrierGatewayClient struct {
	config CarrierGatewayConfig
	client *resty.Client
}

// NewCarrierGatewayClient 创建网关客户端
func NewCarrierGatewayClient(cfg CarrierGatewayConfig) *CarrierGatewayClient {
	return &CarrierGatewayClient{
		config: cfg,
		client: utils.NewAPIClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout),
	}
}

// labelRequest 网关购买面单请求体
type labelRequest struct {
	Carrier      string  `json:"carrier"`
	ServiceLevel string  `json:"service_level"`
	PackageType  string  `json:"package_type"`
	WeightLb     float64 `json:"weight_lb"`
	LengthIn     float64 `json:"length_in"`
	WidthIn      float64 `json:"width_in"`
	HeightIn     float64 `json:"height_in"`
}

// labelResponse 网关响应体
type labelResponse struct {
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url"`
}

func (c *CarrierGatewayClient) PurchaseLabel(ctx context.Context, shipment *model.Shipment) (*Label, error) {
	var result labelResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&labelRequest{
			Carrier:      shipment.Carrier,
			ServiceLevel: shipment.ServiceLevel,
			PackageType:  shipment.PackageType,
			WeightLb:     shipment.WeightLb,
			LengthIn:     shipment.LengthIn,
			WidthIn:      shipment.WidthIn,
			HeightIn:     shipment.HeightIn,
		}).
		SetResult(&result).
		Post("/v1/labels")
	if err != nil {
		return nil, fmt.Errorf("请求物流网关失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("物流网关返回错误: %s", resp.Status())
	}
	if result.TrackingNumber == "" {
		return nil, fmt.Errorf("物流网关未返回运单号")
	}
	return &Label{
		TrackingNumber: result.TrackingNumber,
		LabelURL:       result.LabelURL,
	}, nil
}
