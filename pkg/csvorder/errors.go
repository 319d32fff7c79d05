package csvorder

import (
	"fmt"
	"strings"
)

// ==================== 批次级错误 ====================
// FormatError / ParseError / SchemaError 三类错误都是批次致命的：
// 整个上传直接失败，不做任何入库。

// FormatError 文件类型错误（扩展名不是 CSV）
type FormatError struct {
	Filename string
}

func (e *FormatError) Error() string {
	return "File must be a CSV"
}

// ParseError CSV 行级语法错误（引号不闭合、列数不一致等）
type ParseError struct {
	RowErrors []string // "Row N: message"
}

func (e *ParseError) Error() string {
	return strings.Join(e.RowErrors, "; ")
}

// SchemaError 表头缺列或文件无数据行
type SchemaError struct {
	MissingColumns []string
	Empty          bool
}

func (e *SchemaError) Error() string {
	if e.Empty {
		return "No data found in CSV file"
	}
	return "Missing required columns: " + strings.Join(e.MissingColumns, ", ")
}

// ==================== 订单级错误 ====================

// ValidationError 单个订单组的字段校验错误
// 只影响该订单组，不中断批次内其他订单
type ValidationError struct {
	OrderNumber string
	Message     string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(orderNumber, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		OrderNumber: orderNumber,
		Message:     fmt.Sprintf(format, args...),
	}
}
