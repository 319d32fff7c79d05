package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/settlelinecompany-commits/shipping-aggregator/internal/service"
	"github.com/settlelinecompany-commits/shipping-aggregator/pkg/csvorder"
)

// ImportController CSV 导入控制器
type ImportController struct {
	svc *service.ImportService
}

// NewImportController 创建导入控制器
func NewImportController(svc *service.ImportService) *ImportController {
	return &ImportController{svc: svc}
}

// ==================== CSV 上传 ====================

// UploadCSV 上传并导入订单 CSV
// @Summary 批量导入订单
// @Description 上传 CSV 文件批量创建订单；批次级错误返回 400，订单级失败内嵌在 200 响应里
// @Tags Import (批量导入)
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV 文件"
// @Success 200 {object} dto.ImportReport
// @Failure 400 {object} map[string]interface{} "文件缺失 / 类型错误 / 解析失败"
// @Router /api/orders/upload-csv [post]
func (c *ImportController) UploadCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No file provided",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to read uploaded file",
		})
		return
	}

	report, err := c.svc.ImportCSV(ctx, fileHeader.Filename, content)
	if err != nil {
		// 批次致命错误：文件类型 / 语法 / 缺列，整批拒绝
		var formatErr *csvorder.FormatError
		if errors.As(err, &formatErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "File must be a CSV",
			})
			return
		}

		var parseErr *csvorder.ParseError
		if errors.As(err, &parseErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Failed to parse CSV",
				"details": parseErr.RowErrors,
			})
			return
		}

		var schemaErr *csvorder.SchemaError
		if errors.As(err, &schemaErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Failed to parse CSV",
				"details": []string{schemaErr.Error()},
			})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to process CSV upload",
		})
		return
	}

	// 部分失败仍然是 200，明细内嵌
	ctx.JSON(http.StatusOK, report)
}

// ==================== CSV 模板 ====================

// DownloadTemplate 下载 CSV 模板
// @Summary 下载订单导入模板
// @Tags Import (批量导入)
// @Produce text/csv
// @Success 200 {string} string "CSV 模板"
// @Router /api/orders/csv-template [get]
func (c *ImportController) DownloadTemplate(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="order_import_template.csv"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(csvorder.GenerateTemplate()))
}
