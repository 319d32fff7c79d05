package dto

// ==================== CSV 导入 ====================

// ImportResults 批次导入结果明细
type ImportResults struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// ImportReport 批次导入汇总
// Success 仅当 failed == 0；部分失败时 HTTP 层仍返回 200，明细内嵌
type ImportReport struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Results ImportResults `json:"results"`
}
