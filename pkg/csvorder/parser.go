package csvorder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ==================== 列定义 ====================

// RequiredColumns 必需列（表头归一化之后的名字）
var RequiredColumns = []string{
	"order_number",
	"order_date",
	"customer_name",
	"email",
	"phone",
	"street_line_1",
	"city",
	"state",
	"zip",
	"country",
	"item_title",
	"sku",
	"quantity",
	"item_weight",
	"item_price",
	"order_weight",
	"order_amount",
}

// OptionalColumns 可选列
var OptionalColumns = []string{
	"company",
	"street_line_2",
}

// headerFixTable 表头纠错表
// 注意：这是对归一化截断问题的历史兜底（部分导出工具会截断多词表头），
// 属于固定补丁，不要往里扩展新映射
var headerFixTable = map[string]string{
	"order_numbe":  "order_number",
	"customer_na":  "customer_name",
	"street_line":  "street_line_1",
	"order_amoun":  "order_amount",
	"item_title":   "item_title",
	"item_weight":  "item_weight",
	"item_price":   "item_price",
	"order_weight": "order_weight",
}

// ==================== 结构化结果 ====================

// OrderData 订单头数据
type OrderData struct {
	OrderNumber   string
	OrderDate     string // YYYY-MM-DD
	Status        string
	TotalWeightLb float64
	TotalItems    int
	OrderCurrency string
	OrderAmount   float64
}

// CustomerData 客户数据
type CustomerData struct {
	Name        string
	Company     *string
	Email       string
	Phone       string
	StreetLine1 string
	StreetLine2 *string
	City        string
	State       string
	Zip         string
	Country     string
}

// ItemData 订单项数据
type ItemData struct {
	Title    string
	SKU      string
	Quantity int
	WeightLb float64
	Price    float64
}

// ParsedOrder 一个订单组解析出的三元组
type ParsedOrder struct {
	Order    OrderData
	Customer CustomerData
	Items    []ItemData
}

// FailedOrder 校验失败的订单组
type FailedOrder struct {
	OrderNumber string
	Err         *ValidationError
}

// ParseResult 解析结果
// 订单级校验失败不终止批次，失败订单进 Failed，
// 行级错误（缺订单号）进 RowErrors，不计入订单总数
type ParseResult struct {
	Orders    []ParsedOrder
	Failed    []FailedOrder
	RowErrors []string
}

// Total 批次内发现的订单组总数
func (r *ParseResult) Total() int {
	return len(r.Orders) + len(r.Failed)
}

// ==================== 入口 ====================

// Parse 解析一份上传的 CSV
// 返回的 error 只会是 FormatError / ParseError / SchemaError（批次致命），
// 订单级错误收敛在 ParseResult 里
func Parse(filename string, content []byte) (*ParseResult, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, &FormatError{Filename: filename}
	}

	headers, rows, err := readRecords(content)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, &SchemaError{Empty: true}
	}

	// 校验必需列（一次性报出全部缺失列）
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := headers[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{MissingColumns: missing}
	}

	result := &ParseResult{}

	// 按 order_number 分组，保持发现顺序
	groups, rowErrors := groupRows(rows)
	result.RowErrors = rowErrors

	for _, g := range groups {
		parsed, verr := parseOrderGroup(g.orderNumber, g.rows)
		if verr != nil {
			result.Failed = append(result.Failed, FailedOrder{OrderNumber: g.orderNumber, Err: verr})
			continue
		}
		result.Orders = append(result.Orders, *parsed)
	}

	return result, nil
}

// ==================== 读取与表头归一化 ====================

// row 一条数据行，字段已按归一化表头索引
type row struct {
	index  int // 1 起始的数据行号
	fields map[string]string
}

// NormalizeHeader 表头归一化：小写、空白折叠为下划线、去掉其他符号
func NormalizeHeader(header string) string {
	h := strings.ToLower(header)
	h = strings.Join(strings.Fields(h), "_")
	var b strings.Builder
	for _, c := range h {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		}
	}
	normalized := b.String()
	if fixed, ok := headerFixTable[normalized]; ok {
		return fixed
	}
	return normalized
}

// readRecords 读出表头映射和全部数据行
func readRecords(content []byte) (map[string]int, []row, error) {
	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.TrimLeadingSpace = true

	headerRecord, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, &SchemaError{Empty: true}
		}
		return nil, nil, &ParseError{RowErrors: []string{fmt.Sprintf("Row 0: %v", err)}}
	}

	headers := make(map[string]int, len(headerRecord))
	for i, h := range headerRecord {
		headers[NormalizeHeader(h)] = i
	}

	var rows []row
	var rowErrors []string
	lineNo := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", lineNo, err))
			var perr *csv.ParseError
			// 列数不一致可以继续读，引号类错误无法恢复
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				continue
			}
			break
		}

		// 跳过整行空白
		empty := true
		for _, f := range record {
			if strings.TrimSpace(f) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		fields := make(map[string]string, len(headers))
		for name, idx := range headers {
			if idx < len(record) {
				fields[name] = record[idx]
			}
		}
		rows = append(rows, row{index: lineNo, fields: fields})
	}

	if len(rowErrors) > 0 {
		return nil, nil, &ParseError{RowErrors: rowErrors}
	}
	return headers, rows, nil
}

// ==================== 分组 ====================

type orderGroup struct {
	orderNumber string
	rows        []row
}

// groupRows 按 order_number 分组，组内保持原始行序
// 订单号为空的行单独记错并剔除，不影响批次
func groupRows(rows []row) ([]*orderGroup, []string) {
	var groups []*orderGroup
	var rowErrors []string
	byNumber := make(map[string]*orderGroup)

	for _, r := range rows {
		orderNumber := strings.TrimSpace(r.fields["order_number"])
		if orderNumber == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: Missing order number", r.index))
			continue
		}
		g, ok := byNumber[orderNumber]
		if !ok {
			g = &orderGroup{orderNumber: orderNumber}
			byNumber[orderNumber] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}
	return groups, rowErrors
}

// ==================== 订单组校验与映射 ====================

// requiredFields 订单/客户级必填字段（取组内首行）
var requiredFields = []string{
	"order_date",
	"customer_name",
	"email",
	"phone",
	"street_line_1",
	"city",
	"state",
	"zip",
	"country",
}

// parseOrderGroup 把一组行映射成订单三元组
// 订单级与客户级字段以首行为准，不校验后续行是否与首行一致
func parseOrderGroup(orderNumber string, rows []row) (*ParsedOrder, *ValidationError) {
	if len(rows) == 0 {
		return nil, newValidationError(orderNumber, "empty order group")
	}
	first := rows[0]

	for _, field := range requiredFields {
		if strings.TrimSpace(first.fields[field]) == "" {
			return nil, newValidationError(orderNumber, "Missing required field: %s", field)
		}
	}

	orderDate, ok := parseDate(strings.TrimSpace(first.fields["order_date"]))
	if !ok {
		return nil, newValidationError(orderNumber, "Invalid order date format")
	}

	totalWeight := parseFloatLenient(first.fields["order_weight"])
	if totalWeight <= 0 {
		return nil, newValidationError(orderNumber, "Invalid order weight")
	}
	orderAmount := parseFloatLenient(first.fields["order_amount"])
	if orderAmount <= 0 {
		return nil, newValidationError(orderNumber, "Invalid order amount")
	}

	customer := CustomerData{
		Name:        strings.TrimSpace(first.fields["customer_name"]),
		Company:     optionalField(first.fields["company"]),
		Email:       strings.TrimSpace(first.fields["email"]),
		Phone:       strings.TrimSpace(first.fields["phone"]),
		StreetLine1: strings.TrimSpace(first.fields["street_line_1"]),
		StreetLine2: optionalField(first.fields["street_line_2"]),
		City:        strings.TrimSpace(first.fields["city"]),
		State:       strings.TrimSpace(first.fields["state"]),
		Zip:         strings.TrimSpace(first.fields["zip"]),
		Country:     strings.ToUpper(strings.TrimSpace(first.fields["country"])),
	}

	// 明细逐行解析，不只看首行
	items := make([]ItemData, 0, len(rows))
	totalItems := 0
	for _, r := range rows {
		item, verr := parseItem(orderNumber, r)
		if verr != nil {
			return nil, verr
		}
		items = append(items, *item)
		totalItems += item.Quantity
	}

	return &ParsedOrder{
		Order: OrderData{
			OrderNumber:   orderNumber,
			OrderDate:     orderDate,
			Status:        "pending",
			TotalWeightLb: totalWeight,
			TotalItems:    totalItems,
			OrderCurrency: "USD",
			OrderAmount:   orderAmount,
		},
		Customer: customer,
		Items:    items,
	}, nil
}

// parseItem 解析一行订单项
func parseItem(orderNumber string, r row) (*ItemData, *ValidationError) {
	title := strings.TrimSpace(r.fields["item_title"])
	if title == "" {
		return nil, newValidationError(orderNumber, "Missing required field: item_title")
	}
	sku := strings.TrimSpace(r.fields["sku"])
	if sku == "" {
		return nil, newValidationError(orderNumber, "Missing required field: sku")
	}

	quantity := 1
	if q := strings.TrimSpace(r.fields["quantity"]); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			return nil, newValidationError(orderNumber, "Invalid quantity for item: %s", title)
		}
		quantity = n
	}

	weight := parseFloatLenient(r.fields["item_weight"])
	if weight < 0 {
		return nil, newValidationError(orderNumber, "Invalid weight for item: %s", title)
	}
	price := parseFloatLenient(r.fields["item_price"])
	if price < 0 {
		return nil, newValidationError(orderNumber, "Invalid price for item: %s", title)
	}

	return &ItemData{
		Title:    title,
		SKU:      sku,
		Quantity: quantity,
		WeightLb: weight,
		Price:    price,
	}, nil
}

// ==================== 工具 ====================

// dateFormats 宽容的日期格式表，命中即归一化为 YYYY-MM-DD
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

func parseDate(value string) (string, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseFloatLenient 空串或解析失败按 0 处理（沿用来源系统的宽容行为）
func parseFloatLenient(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return v
}

// optionalField 空白即缺省（nil），而不是空字符串
func optionalField(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}
