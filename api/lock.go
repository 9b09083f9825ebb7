package api

import (
	"time"

	"chequeprinter/config"
	"chequeprinter/middleware"
	"chequeprinter/service"

	"github.com/gin-gonic/gin"
)

// LockHandler 应用锁处理器
type LockHandler struct {
	svc        *service.LockService
	sessionTTL time.Duration
}

// NewLockHandler 创建应用锁处理器，sessionTTL 为解锁后的自动锁定时间
func NewLockHandler(svc *service.LockService, sessionTTL time.Duration) *LockHandler {
	return &LockHandler{svc: svc, sessionTTL: sessionTTL}
}

// UnlockRequest 解锁请求
type UnlockRequest struct {
	PIN string `json:"pin" binding:"required" example:"1234"`
}

// RemovePINRequest 关闭应用锁请求
type RemovePINRequest struct {
	CurrentPIN string `json:"currentPin" binding:"required" example:"1234"`
}

// UnlockResponse 解锁会话
type UnlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Status 应用锁状态
// @Summary 应用锁状态
// @Tags 应用锁
// @Produce json
// @Success 200 {object} Response "enabled: 是否已设置 PIN"
// @Router /api/v1/lock/status [get]
func (h *LockHandler) Status(c *gin.Context) {
	enabled, err := h.svc.Enabled(c.Request.Context())
	if err != nil {
		respondError(c, err, "读取应用锁状态失败")
		return
	}
	Success(c, gin.H{
		"enabled":        enabled,
		"sessionMinutes": int(h.sessionTTL / time.Minute),
	})
}

// SetPIN 设置或修改 PIN
// @Summary 设置 PIN
// @Description 4-8 位数字；已设置时需提供 currentPin
// @Tags 应用锁
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PINInput true "PIN"
// @Success 200 {object} Response "设置成功"
// @Failure 400 {object} Response "PIN 格式错误"
// @Failure 401 {object} Response "当前 PIN 错误"
// @Router /api/v1/lock/pin [post]
func (h *LockHandler) SetPIN(c *gin.Context) {
	var in service.PINInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	if err := h.svc.SetPIN(c.Request.Context(), in); err != nil {
		respondError(c, err, "设置 PIN 失败")
		return
	}
	SuccessWithMessage(c, "PIN 已设置", nil)
}

// RemovePIN 关闭应用锁
// @Summary 关闭应用锁
// @Tags 应用锁
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RemovePINRequest true "当前 PIN"
// @Success 200 {object} Response "已关闭"
// @Failure 401 {object} Response "PIN 错误"
// @Router /api/v1/lock/pin [delete]
func (h *LockHandler) RemovePIN(c *gin.Context) {
	var req RemovePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请提供当前 PIN")
		return
	}
	if err := h.svc.RemovePIN(c.Request.Context(), req.CurrentPIN); err != nil {
		respondError(c, err, "关闭应用锁失败")
		return
	}
	SuccessWithMessage(c, "应用锁已关闭", nil)
}

// Unlock 解锁
// @Summary 解锁
// @Description 校验 PIN 后返回会话 token，过期后需重新解锁；连续失败会被限流
// @Tags 应用锁
// @Accept json
// @Produce json
// @Param request body UnlockRequest true "PIN"
// @Success 200 {object} Response{data=UnlockResponse} "解锁成功"
// @Failure 401 {object} Response "PIN 错误"
// @Failure 429 {object} Response "尝试过于频繁"
// @Router /api/v1/lock/unlock [post]
func (h *LockHandler) Unlock(c *gin.Context) {
	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请输入 PIN")
		return
	}
	if err := h.svc.Verify(c.Request.Context(), req.PIN); err != nil {
		respondError(c, err, "解锁失败")
		return
	}
	token, expiresAt, err := middleware.GenerateToken(h.sessionTTL)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "生成会话失败"))
		return
	}
	SuccessWithMessage(c, "解锁成功", UnlockResponse{Token: token, ExpiresAt: expiresAt})
}
