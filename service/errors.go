package service

import (
	"errors"
	"fmt"
	"strings"

	"chequeprinter/store"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation 参数校验失败
	ErrValidation = errors.New("参数校验失败")
	// ErrLayoutNotFound 版式不存在（含支票引用的版式已被删除）
	ErrLayoutNotFound = errors.New("版式不存在")
	// ErrChequeNotFound 支票记录不存在
	ErrChequeNotFound = errors.New("支票记录不存在")
	// ErrDecode 导入文件无法解析
	ErrDecode = errors.New("文件格式错误")
	// ErrLocked 应用已锁定
	ErrLocked = errors.New("应用已锁定，请先解锁")
	// ErrInvalidPIN PIN 错误
	ErrInvalidPIN = errors.New("PIN 错误")
)

var validate = validator.New()

// invalid 构造校验错误
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// validateStruct 按 validate 标签校验，错误统一包装为 ErrValidation
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return invalid("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " 不能为空"
	case "gte":
		return fe.Field() + " 不能小于 " + fe.Param()
	case "max":
		return fe.Field() + " 长度不能超过 " + fe.Param()
	case "datetime":
		return fe.Field() + " 格式错误，应为: " + fe.Param()
	case "numeric":
		return fe.Field() + " 只能包含数字"
	case "len", "min":
		return fe.Field() + " 长度不符合要求"
	}
	return fe.Field() + " 无效"
}

// mapNotFound 将存储层的 ErrNotFound 映射为业务错误
func mapNotFound(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}
