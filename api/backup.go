package api

import (
	"net/http"

	"chequeprinter/service"

	"github.com/gin-gonic/gin"
)

// BackupHandler 备份处理器
type BackupHandler struct {
	svc *service.BackupService
}

// NewBackupHandler 创建备份处理器
func NewBackupHandler(svc *service.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// EmailBackupRequest 邮件发送备份请求
type EmailBackupRequest struct {
	To string `json:"to" binding:"required" example:"me@example.com"`
}

// Download 下载全量备份
// @Summary 下载备份
// @Description 导出全部支票（明文）与版式，格式 {version, exportDate, cheques, layouts}
// @Tags 备份
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Backup "备份文件"
// @Router /api/v1/backup [get]
func (h *BackupHandler) Download(c *gin.Context) {
	name, data, err := h.svc.ExportFile(c.Request.Context())
	if err != nil {
		respondError(c, err, "导出备份失败")
		return
	}
	attachment(c, name, false)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Restore 从备份恢复
// @Summary 恢复备份
// @Description 校验全部记录后在同一事务中写入，同 ID 覆盖；任一失败则不做任何修改
// @Tags 备份
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file false "备份文件"
// @Success 200 {object} Response{data=service.RestoreResult} "恢复成功"
// @Failure 400 {object} Response "文件格式错误"
// @Router /api/v1/backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		respondError(c, err, "读取文件失败")
		return
	}
	res, err := h.svc.Restore(c.Request.Context(), data)
	if err != nil {
		respondError(c, err, "恢复备份失败")
		return
	}
	SuccessWithMessage(c, "恢复成功", res)
}

// Email 通过邮件发送备份
// @Summary 邮件发送备份
// @Description 需在配置中启用 email
// @Tags 备份
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EmailBackupRequest true "收件人"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/backup/email [post]
func (h *BackupHandler) Email(c *gin.Context) {
	var req EmailBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请提供收件人邮箱")
		return
	}
	if err := h.svc.Email(c.Request.Context(), req.To); err != nil {
		respondError(c, err, "发送备份邮件失败")
		return
	}
	SuccessWithMessage(c, "备份已发送", nil)
}
