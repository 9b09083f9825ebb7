package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chequeprinter/models"
)

// ErrInvalidDate 日期不是 YYYY-MM-DD 格式
var ErrInvalidDate = errors.New("日期格式错误，应为: 2006-01-02")

// FormatDate 将 ISO 日期格式化为支票日期
// 预览: 每个数字之间一个空格，如 "1 5 0 3 2 0 2 4"
// 打印: DD/MM/YYYY
func FormatDate(iso string, mode Mode) (string, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(iso))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	if mode == Print {
		return d.Format("02/01/2006"), nil
	}
	digits := d.Format("02012006")
	return strings.Join(strings.Split(digits, ""), " "), nil
}
