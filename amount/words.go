// Package amount 处理金额：解析、格式化，以及按印度计数法转换为英文大写。
package amount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency 货币符号与单位（固定为印度卢比）
const (
	Symbol       = "₹"
	MajorUnit    = "Rupees"
	MinorUnit    = "Paise"
	zeroInWords  = "Zero Rupees Only"
	terminalWord = "Only"
)

var (
	// ErrNegative 金额为负
	ErrNegative = errors.New("金额不能为负数")
	// ErrTooLarge 金额超出可转换范围
	ErrTooLarge = errors.New("金额过大")
)

// MaxAmount 可转换金额的上限（不含），即一亿亿卢比
var MaxAmount = decimal.New(1, 15)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
)

// belowThousand 转换 0-999，0 返回空字符串
func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		w := tens[n/10]
		if n%10 > 0 {
			w += " " + ones[n%10]
		}
		return w
	}
	w := ones[n/100] + " Hundred"
	if rest := n % 100; rest > 0 {
		w += " and " + belowThousand(rest)
	}
	return w
}

// integerWords 把整数部分拆成 crore / lakh / thousand / 余数四段后拼接
func integerWords(n int64) string {
	var parts []string

	c := n / crore
	l := (n % crore) / lakh
	t := (n % lakh) / thousand
	r := n % thousand

	if c > 0 {
		// crore 超过 999 时继续按印度计数法展开
		if c < thousand {
			parts = append(parts, belowThousand(c), "Crore")
		} else {
			parts = append(parts, integerWords(c), "Crore")
		}
	}
	if l > 0 {
		parts = append(parts, belowThousand(l), "Lakh")
	}
	if t > 0 {
		parts = append(parts, belowThousand(t), "Thousand")
	}
	if r > 0 {
		parts = append(parts, belowThousand(r))
	}
	return strings.Join(parts, " ")
}

// Split 四舍五入到两位小数后拆为卢比与派沙
// 调用方需保证金额小于 MaxAmount
func Split(d decimal.Decimal) (rupees, paise int64) {
	rounded := d.Round(2)
	rupees = rounded.IntPart()
	paise = rounded.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()
	return rupees, paise
}

// ToWords 将非负金额转换为印度计数法的英文大写
// 例: 1234567.89 -> "Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven Rupees and Eighty Nine Paise Only"
// 整数部分为 0 而派沙不为 0 时输出 "Zero Rupees and ... Paise Only"
func ToWords(d decimal.Decimal) (string, error) {
	if d.IsNegative() {
		return "", ErrNegative
	}
	if d.Round(2).GreaterThanOrEqual(MaxAmount) {
		return "", ErrTooLarge
	}

	rupees, paise := Split(d)
	if rupees == 0 && paise == 0 {
		return zeroInWords, nil
	}

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(integerWords(rupees))
	}
	b.WriteString(" " + MajorUnit)

	if paise > 0 {
		b.WriteString(" and " + belowThousand(paise) + " " + MinorUnit)
	}
	b.WriteString(" " + terminalWord)
	return b.String(), nil
}

// MustWords 同 ToWords，出错时 panic，仅用于已校验过的金额
func MustWords(d decimal.Decimal) string {
	w, err := ToWords(d)
	if err != nil {
		panic(err)
	}
	return w
}

// Parse 解析用户输入的金额文本
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Symbol)
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, errors.New("金额不能为空")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("无效的金额 %q: %w", s, err)
	}
	return d, nil
}

// Fixed 两位小数字符串，如 1234.50
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Format 带货币符号的金额，如 "₹ 1234.50"
func Format(d decimal.Decimal) string {
	return Symbol + " " + Fixed(d)
}
