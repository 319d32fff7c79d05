package csvorder

import (
	"strings"
)

// ==================== CSV 模板 ====================

// templateHeaders 模板表头（人类可读，归一化后正好命中必需列）
var templateHeaders = []string{
	"Order Number",
	"Order Date",
	"Customer Name",
	"Company",
	"Email",
	"Phone",
	"Street Line 1",
	"Street Line 2",
	"City",
	"State",
	"Zip",
	"Country",
	"Item Title",
	"SKU",
	"Quantity",
	"Item Weight",
	"Item Price",
	"Order Weight",
	"Order Amount",
}

// templateSampleRow 示例数据行
var templateSampleRow = []string{
	"ORD-1000",
	"2024-01-15",
	"John Doe",
	"Acme Corp",
	"john@acme.com",
	"555-0123",
	"123 Main St",
	"Suite 100",
	"New York",
	"NY",
	"10001",
	"US",
	"Sample Product",
	"SP-001",
	"2",
	"0.5",
	"25.99",
	"1.0",
	"51.98",
}

// GenerateTemplate 生成下载用的 CSV 模板（表头 + 一行示例）
func GenerateTemplate() string {
	return strings.Join(templateHeaders, ",") + "\n" + strings.Join(templateSampleRow, ",")
}
