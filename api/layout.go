package api

import (
	"encoding/json"
	"net/http"

	"chequeprinter/config"
	"chequeprinter/service"

	"github.com/gin-gonic/gin"
)

// LayoutHandler 版式处理器
type LayoutHandler struct {
	svc *service.LayoutService
}

// NewLayoutHandler 创建版式处理器
func NewLayoutHandler(svc *service.LayoutService) *LayoutHandler {
	return &LayoutHandler{svc: svc}
}

// List 版式列表
// @Summary 版式列表
// @Description 按创建顺序返回全部版式，首次启动时包含 SBI / HDFC / ICICI 三个默认版式
// @Tags 版式
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Layout} "获取成功"
// @Router /api/v1/layouts [get]
func (h *LayoutHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "查询版式失败")
		return
	}
	Success(c, list)
}

// Get 获取版式
// @Summary 获取版式
// @Tags 版式
// @Produce json
// @Security BearerAuth
// @Param id path string true "版式 ID"
// @Success 200 {object} Response{data=models.Layout} "获取成功"
// @Failure 404 {object} Response "版式不存在"
// @Router /api/v1/layouts/{id} [get]
func (h *LayoutHandler) Get(c *gin.Context) {
	l, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "查询版式失败")
		return
	}
	Success(c, l)
}

// Create 新建版式
// @Summary 新建版式
// @Description acPayeeX / acPayeeY 未提供时取默认位置 (110, 80)
// @Tags 版式
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.LayoutInput true "版式信息"
// @Success 200 {object} Response{data=models.Layout} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/layouts [post]
func (h *LayoutHandler) Create(c *gin.Context) {
	in := service.NewLayoutInput()
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	l, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "创建版式失败")
		return
	}
	SuccessWithMessage(c, "创建成功", l)
}

// Update 修改版式
// @Summary 修改版式
// @Description 整体替换名称、坐标与背景图，不影响已保存的支票
// @Tags 版式
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "版式 ID"
// @Param request body service.LayoutInput true "版式信息"
// @Success 200 {object} Response{data=models.Layout} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "版式不存在"
// @Router /api/v1/layouts/{id} [put]
func (h *LayoutHandler) Update(c *gin.Context) {
	in := service.NewLayoutInput()
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	l, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "更新版式失败")
		return
	}
	SuccessWithMessage(c, "更新成功", l)
}

// Delete 删除版式
// @Summary 删除版式
// @Description 引用该版式的支票保留，之后无法预览或打印
// @Tags 版式
// @Produce json
// @Security BearerAuth
// @Param id path string true "版式 ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "版式不存在"
// @Router /api/v1/layouts/{id} [delete]
func (h *LayoutHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "删除版式失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Export 导出版式文件
// @Summary 导出版式
// @Description 下载 {name, coordinates} 格式的 JSON 文件
// @Tags 版式
// @Produce json
// @Security BearerAuth
// @Param id path string true "版式 ID"
// @Success 200 {object} models.LayoutFile "版式文件"
// @Failure 404 {object} Response "版式不存在"
// @Router /api/v1/layouts/{id}/export [get]
func (h *LayoutHandler) Export(c *gin.Context) {
	f, err := h.svc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "导出版式失败")
		return
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "导出版式失败"))
		return
	}
	attachment(c, service.ExportFilename(f.Name), false)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Import 导入版式文件
// @Summary 导入版式
// @Description 请求体为版式 JSON，或 multipart 的 file 字段；总是新建版式
// @Tags 版式
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file false "版式文件"
// @Success 200 {object} Response{data=models.Layout} "导入成功"
// @Failure 400 {object} Response "文件格式错误"
// @Router /api/v1/layouts/import [post]
func (h *LayoutHandler) Import(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		respondError(c, err, "读取文件失败")
		return
	}
	l, err := h.svc.Import(c.Request.Context(), data)
	if err != nil {
		respondError(c, err, "导入版式失败")
		return
	}
	SuccessWithMessage(c, "导入成功", l)
}
