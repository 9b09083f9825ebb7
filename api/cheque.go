package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"chequeprinter/config"
	"chequeprinter/service"

	"github.com/gin-gonic/gin"
)

// ChequeHandler 支票处理器
type ChequeHandler struct {
	svc *service.ChequeService
}

// NewChequeHandler 创建支票处理器
func NewChequeHandler(svc *service.ChequeService) *ChequeHandler {
	return &ChequeHandler{svc: svc}
}

// bindInput 解析支票表单
func bindInput(c *gin.Context) (service.ChequeInput, bool) {
	var in service.ChequeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return in, false
	}
	return in, true
}

// Create 新建支票
// @Summary 新建支票
// @Description 校验表单后生成金额大写，加密保存到本机
// @Tags 支票
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ChequeInput true "支票信息"
// @Success 200 {object} Response{data=models.ChequeRecord} "保存成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "版式不存在"
// @Router /api/v1/cheques [post]
func (h *ChequeHandler) Create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "保存支票失败")
		return
	}
	SuccessWithMessage(c, "支票已保存", rec)
}

// List 支票历史
// @Summary 支票历史
// @Description 最新在前；q 按收款人、银行或金额过滤（不区分大小写）
// @Tags 支票
// @Produce json
// @Security BearerAuth
// @Param q query string false "搜索关键字"
// @Success 200 {object} Response{data=[]models.ChequeRecord} "获取成功"
// @Router /api/v1/cheques [get]
func (h *ChequeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "查询支票失败")
		return
	}
	Success(c, list)
}

// Get 获取支票
// @Summary 获取支票
// @Tags 支票
// @Produce json
// @Security BearerAuth
// @Param id path string true "支票 ID"
// @Success 200 {object} Response{data=models.ChequeRecord} "获取成功"
// @Failure 404 {object} Response "支票记录不存在"
// @Router /api/v1/cheques/{id} [get]
func (h *ChequeHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "查询支票失败")
		return
	}
	Success(c, rec)
}

// Delete 删除支票
// @Summary 删除支票
// @Tags 支票
// @Produce json
// @Security BearerAuth
// @Param id path string true "支票 ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "支票记录不存在"
// @Router /api/v1/cheques/{id} [delete]
func (h *ChequeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "删除支票失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Preview 支票预览图
// @Summary 支票预览
// @Description 按支票引用的版式绘制 PNG 预览（含 A/C PAYEE ONLY）
// @Tags 支票
// @Produce png
// @Security BearerAuth
// @Param id path string true "支票 ID"
// @Success 200 {file} file "PNG 图片"
// @Failure 404 {object} Response "支票或版式不存在"
// @Router /api/v1/cheques/{id}/preview [get]
func (h *ChequeHandler) Preview(c *gin.Context) {
	art, err := h.svc.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "生成预览失败")
		return
	}
	writeArtifact(c, art, true)
}

// PDF 支票打印文件
// @Summary 下载或打印支票
// @Description 生成 8.5in x 3.5in 横向 PDF；print=1 时以 inline 方式返回供浏览器打印
// @Tags 支票
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "支票 ID"
// @Param print query string false "1 表示直接打印"
// @Success 200 {file} file "PDF 文件"
// @Failure 404 {object} Response "支票或版式不存在"
// @Router /api/v1/cheques/{id}/pdf [get]
func (h *ChequeHandler) PDF(c *gin.Context) {
	art, err := h.svc.PDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "生成 PDF 失败")
		return
	}
	writeArtifact(c, art, c.Query("print") == "1")
}

// DraftPreview 未保存表单的预览
// @Summary 表单预览
// @Description 不保存记录，直接按所选版式绘制 PNG 预览
// @Tags 支票
// @Accept json
// @Produce png
// @Security BearerAuth
// @Param request body service.ChequeInput true "支票信息"
// @Success 200 {file} file "PNG 图片"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "版式不存在"
// @Router /api/v1/cheques/preview [post]
func (h *ChequeHandler) DraftPreview(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	art, err := h.svc.DraftPreview(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "生成预览失败")
		return
	}
	writeArtifact(c, art, true)
}

// DraftPDF 未保存表单的打印文件
// @Summary 表单下载或打印
// @Description 不保存记录，直接生成 PDF；print=1 时以 inline 方式返回
// @Tags 支票
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param print query string false "1 表示直接打印"
// @Param request body service.ChequeInput true "支票信息"
// @Success 200 {file} file "PDF 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "版式不存在"
// @Router /api/v1/cheques/pdf [post]
func (h *ChequeHandler) DraftPDF(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	art, err := h.svc.DraftPDF(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "生成 PDF 失败")
		return
	}
	writeArtifact(c, art, c.Query("print") == "1")
}

func writeArtifact(c *gin.Context, art service.Artifact, inline bool) {
	attachment(c, art.Name, inline)
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

// ExportExcel 导出支票历史为 Excel
// @Summary 导出 Excel
// @Description 导出全部支票（可按 q 过滤），末行为金额合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param q query string false "搜索关键字"
// @Success 200 {file} file "Excel 文件"
// @Router /api/v1/cheques/export/excel [get]
func (h *ChequeHandler) ExportExcel(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "查询支票失败")
		return
	}
	data, err := service.ExportExcel(list)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}
	attachment(c, fmt.Sprintf("cheques_%s.xlsx", time.Now().Format("20060102")), false)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportCSV 导出支票历史为 CSV
// @Summary 导出 CSV
// @Description 导出全部支票（可按 q 过滤），UTF-8 带 BOM
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param q query string false "搜索关键字"
// @Success 200 {file} file "CSV 文件"
// @Router /api/v1/cheques/export/csv [get]
func (h *ChequeHandler) ExportCSV(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "查询支票失败")
		return
	}
	buf := new(bytes.Buffer)
	if err := service.ExportCSV(buf, list); err != nil {
		InternalError(c, config.SafeErrorMessage(err, "生成 CSV 失败"))
		return
	}
	attachment(c, fmt.Sprintf("cheques_%s.csv", time.Now().Format("20060102")), false)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
