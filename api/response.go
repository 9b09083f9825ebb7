package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"chequeprinter/config"
	"chequeprinter/service"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构，文件类接口直接返回内容，出错时仍返回该结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// maxUploadSize 导入文件上限（含背景图的备份可能较大）
const maxUploadSize = 32 << 20

// respondError 业务错误映射为 HTTP 状态码，其余按 500 处理且不暴露细节
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDecode):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrLayoutNotFound), errors.Is(err, service.ErrChequeNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidPIN), errors.Is(err, service.ErrLocked):
		Unauthorized(c, err.Error())
	default:
		InternalError(c, config.SafeErrorMessage(err, fallback))
	}
}

// readUpload 读取上传内容：multipart 的 file 字段或原始请求体
func readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: 缺少 file 字段", service.ErrDecode)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrDecode, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 内容为空", service.ErrDecode)
	}
	return data, nil
}

// attachment 设置下载文件名，inline 为 true 时浏览器直接打开（用于打印）
func attachment(c *gin.Context, filename string, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename*=UTF-8''%s", disposition, url.PathEscape(filename)))
}
