package dto

// ==================== 客户请求 ====================

// ListCustomersRequest 客户列表查询参数
type ListCustomersRequest struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50"`
}

// CustomerPayload 客户字段（建单 / 建客户共用）
type CustomerPayload struct {
	Name        string  `json:"name" binding:"required"`
	Company     *string `json:"company"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone" binding:"required"`
	StreetLine1 string  `json:"street_line_1" binding:"required"`
	StreetLine2 *string `json:"street_line_2"`
	City        string  `json:"city" binding:"required"`
	State       string  `json:"state" binding:"required"`
	Zip         string  `json:"zip" binding:"required"`
	Country     string  `json:"country"`
}
