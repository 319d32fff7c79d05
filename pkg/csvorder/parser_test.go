package csvorder

import (
	"errors"
	"strings"
	"testing"
)

// ==================== 辅助函数 ====================

// buildCSV 拼一份最小可用的 CSV
func buildCSV(rows ...string) []byte {
	header := "Order Number,Order Date,Customer Name,Company,Email,Phone,Street Line 1,Street Line 2,City,State,Zip,Country,Item Title,SKU,Quantity,Item Weight,Item Price,Order Weight,Order Amount"
	return []byte(header + "\n" + strings.Join(rows, "\n"))
}

// validRow 一条完整合法的数据行
func validRow(orderNumber, title, sku, quantity string) string {
	return strings.Join([]string{
		orderNumber, "2024-01-15", "John Doe", "Acme Corp", "john@acme.com", "555-0123",
		"123 Main St", "Suite 100", "New York", "NY", "10001", "us",
		title, sku, quantity, "0.5", "25.99", "1.2", "51.98",
	}, ",")
}

// ==================== 表头归一化 ====================

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Order Number", "order_number"},
		{"  ORDER   DATE ", "order_date"},
		{"Street Line 1", "street_line_1"},
		{"Item Title (USD)", "item_title_usd"},
		// 截断表头纠错
		{"Order Numbe", "order_number"},
		{"Customer Na", "customer_name"},
		{"Street Line", "street_line_1"},
		{"Order Amoun", "order_amount"},
	}

	for _, tt := range tests {
		if got := NormalizeHeader(tt.in); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ==================== 批次级错误 ====================

func TestParse_NotCSV(t *testing.T) {
	_, err := Parse("orders.xlsx", []byte("whatever"))

	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want FormatError", err)
	}
	if ferr.Error() != "File must be a CSV" {
		t.Errorf("错误信息 = %q", ferr.Error())
	}
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse("orders.csv", buildCSV())

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if !strings.Contains(serr.Error(), "No data found in CSV file") {
		t.Errorf("错误信息 = %q", serr.Error())
	}
}

func TestParse_MissingColumns(t *testing.T) {
	content := []byte("Order Number,Order Date\nORD-1,2024-01-15")
	_, err := Parse("orders.csv", content)

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if !strings.Contains(serr.Error(), "Missing required columns:") {
		t.Errorf("错误信息 = %q", serr.Error())
	}
	if !strings.Contains(serr.Error(), "sku") {
		t.Errorf("缺失列应包含 sku，got %q", serr.Error())
	}
}

func TestParse_BrokenQuoting(t *testing.T) {
	content := buildCSV(`ORD-1,"2024-01-15`)
	_, err := Parse("orders.csv", content)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ParseError", err)
	}
	if len(perr.RowErrors) == 0 {
		t.Error("ParseError 应携带行级错误明细")
	}
}

// ==================== 分组与映射 ====================

func TestParse_GroupsRowsByOrderNumber(t *testing.T) {
	content := buildCSV(
		validRow("ORD-1", "Widget", "W-1", "2"),
		validRow("ORD-1", "Gadget", "G-1", "3"),
		validRow("ORD-2", "Widget", "W-1", "1"),
	)

	result, err := Parse("orders.csv", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(result.Orders) != 2 {
		t.Fatalf("订单数 = %d, want 2", len(result.Orders))
	}
	if result.Total() != 2 {
		t.Errorf("Total() = %d, want 2", result.Total())
	}

	first := result.Orders[0]
	if first.Order.OrderNumber != "ORD-1" {
		t.Errorf("首个订单号 = %q（应保持发现顺序）", first.Order.OrderNumber)
	}
	if len(first.Items) != 2 {
		t.Errorf("ORD-1 明细数 = %d, want 2", len(first.Items))
	}
	// total_items 是数量求和，不是行数
	if first.Order.TotalItems != 5 {
		t.Errorf("ORD-1 TotalItems = %d, want 5", first.Order.TotalItems)
	}
	if first.Order.TotalWeightLb != 1.2 {
		t.Errorf("ORD-1 TotalWeightLb = %v, want 1.2", first.Order.TotalWeightLb)
	}
	if first.Order.OrderAmount != 51.98 {
		t.Errorf("ORD-1 OrderAmount = %v, want 51.98", first.Order.OrderAmount)
	}
	if first.Order.Status != "pending" {
		t.Errorf("默认状态 = %q, want pending", first.Order.Status)
	}
	if first.Customer.Country != "US" {
		t.Errorf("国家应大写化, got %q", first.Customer.Country)
	}
	if first.Customer.Company == nil || *first.Customer.Company != "Acme Corp" {
		t.Errorf("公司字段解析错误: %v", first.Customer.Company)
	}
}

func TestParse_MissingOrderNumberRow(t *testing.T) {
	content := buildCSV(
		validRow("ORD-1", "Widget", "W-1", "1"),
		validRow("", "Gadget", "G-1", "1"),
	)

	result, err := Parse("orders.csv", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// 缺订单号的行记错但不计入订单总数
	if result.Total() != 1 {
		t.Errorf("Total() = %d, want 1", result.Total())
	}
	if len(result.RowErrors) != 1 {
		t.Fatalf("RowErrors 数 = %d, want 1", len(result.RowErrors))
	}
	if result.RowErrors[0] != "Row 2: Missing order number" {
		t.Errorf("RowErrors[0] = %q", result.RowErrors[0])
	}
}

// ==================== 订单级校验 ====================

func TestParse_OrderLevelValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fields []string)
		wantMsg string
	}{
		{
			name:    "缺客户名",
			mutate:  func(f []string) { f[2] = "" },
			wantMsg: "Missing required field: customer_name",
		},
		{
			name:    "日期格式错误",
			mutate:  func(f []string) { f[1] = "not-a-date" },
			wantMsg: "Invalid order date format",
		},
		{
			name:    "订单重量非正数",
			mutate:  func(f []string) { f[17] = "0" },
			wantMsg: "Invalid order weight",
		},
		{
			name:    "订单金额解析失败按0",
			mutate:  func(f []string) { f[18] = "abc" },
			wantMsg: "Invalid order amount",
		},
		{
			name:    "数量非法",
			mutate:  func(f []string) { f[14] = "zero" },
			wantMsg: "Invalid quantity for item: Widget",
		},
		{
			name:    "单价为负",
			mutate:  func(f []string) { f[16] = "-1" },
			wantMsg: "Invalid price for item: Widget",
		},
		{
			name:    "缺SKU",
			mutate:  func(f []string) { f[13] = "" },
			wantMsg: "Missing required field: sku",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := strings.Split(validRow("ORD-1", "Widget", "W-1", "1"), ",")
			tt.mutate(fields)
			content := buildCSV(strings.Join(fields, ","))

			result, err := Parse("orders.csv", content)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if len(result.Failed) != 1 {
				t.Fatalf("Failed 数 = %d, want 1", len(result.Failed))
			}
			failed := result.Failed[0]
			if failed.OrderNumber != "ORD-1" {
				t.Errorf("失败订单号 = %q", failed.OrderNumber)
			}
			if failed.Err.Message != tt.wantMsg {
				t.Errorf("错误信息 = %q, want %q", failed.Err.Message, tt.wantMsg)
			}
		})
	}
}

func TestParse_BadOrderDoesNotPoisonBatch(t *testing.T) {
	content := buildCSV(
		validRow("ORD-1", "Widget", "W-1", "1"),
		validRow("ORD-2", "", "G-1", "1"), // 缺 item_title
		validRow("ORD-3", "Widget", "W-1", "1"),
	)

	result, err := Parse("orders.csv", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(result.Orders) != 2 || len(result.Failed) != 1 {
		t.Fatalf("Orders=%d Failed=%d, want 2/1", len(result.Orders), len(result.Failed))
	}
	if result.Failed[0].Err.Message != "Missing required field: item_title" {
		t.Errorf("错误信息 = %q", result.Failed[0].Err.Message)
	}
}

func TestParse_QuantityDefaultsToOne(t *testing.T) {
	content := buildCSV(validRow("ORD-1", "Widget", "W-1", ""))

	result, err := Parse("orders.csv", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Orders) != 1 {
		t.Fatalf("Orders = %d, want 1", len(result.Orders))
	}
	if result.Orders[0].Items[0].Quantity != 1 {
		t.Errorf("空数量应默认为 1, got %d", result.Orders[0].Items[0].Quantity)
	}
}

func TestParse_LenientDateFormats(t *testing.T) {
	dates := []string{"2024-01-15", "01/15/2024", "2024/01/15", "Jan 15, 2024"}

	for _, d := range dates {
		fields := strings.Split(validRow("ORD-1", "Widget", "W-1", "1"), ",")
		// 含逗号的日期需按 CSV 规则加引号
		fields[1] = `"` + d + `"`
		content := buildCSV(strings.Join(fields, ","))

		result, err := Parse("orders.csv", content)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", d, err)
		}
		if len(result.Orders) != 1 {
			t.Fatalf("日期 %q 应可解析", d)
		}
		if got := result.Orders[0].Order.OrderDate; got != "2024-01-15" {
			t.Errorf("日期 %q 归一化为 %q, want 2024-01-15", d, got)
		}
	}
}

// ==================== 模板 ====================

func TestGenerateTemplate_RoundTrip(t *testing.T) {
	template := GenerateTemplate()

	result, err := Parse("template.csv", []byte(template))
	if err != nil {
		t.Fatalf("模板自身应可解析: %v", err)
	}
	if len(result.Orders) != 1 || len(result.Failed) != 0 {
		t.Fatalf("Orders=%d Failed=%d, want 1/0", len(result.Orders), len(result.Failed))
	}

	order := result.Orders[0]
	if order.Order.OrderNumber != "ORD-1000" {
		t.Errorf("订单号 = %q", order.Order.OrderNumber)
	}
	if len(order.Items) != 1 || order.Items[0].SKU != "SP-001" {
		t.Errorf("明细解析错误: %+v", order.Items)
	}
}
