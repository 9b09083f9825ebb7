// Package render 将支票记录按版式坐标排布到固定尺寸的画布上，
// 输出屏幕预览（PNG）或打印文档（PDF）。
package render

import (
	"fmt"

	"chequeprinter/amount"
	"chequeprinter/models"
)

// Mode 输出模式
type Mode int

const (
	// Preview 屏幕预览，单位为像素
	Preview Mode = iota
	// Print 打印文档，单位为毫米
	Print
)

func (m Mode) String() string {
	if m == Print {
		return "print"
	}
	return "preview"
}

// 标准支票尺寸 8.5in x 3.5in
const (
	DPI       = 96.0
	MmPerInch = 25.4

	PageWidthMm  = 215.9
	PageHeightMm = 88.9

	CanvasWidthPx  = 816 // 8.5 * 96
	CanvasHeightPx = 336 // 3.5 * 96

	// Caption 账户付款字样
	Caption = "A/C PAYEE ONLY"
)

// PxToMm 像素换算为毫米（按 96 DPI）
func PxToMm(px float64) float64 {
	return px * MmPerInch / DPI
}

// Field 支票上的字段
type Field string

const (
	FieldPayee       Field = "payee"
	FieldAmountWords Field = "amount_words"
	FieldAmount      Field = "amount"
	FieldDate        Field = "date"
	FieldCaption     Field = "ac_payee"
)

// Text 画布上的一段文字，(X, Y) 为基线左端点
type Text struct {
	Field Field
	Value string
	X     float64
	Y     float64
	Bold  bool
}

// Document 排版结果，与输出格式无关
type Document struct {
	Mode       Mode
	Width      float64
	Height     float64
	Texts      []Text
	Background string // 版式背景图（data URL 或 base64），可为空
}

// Build 按版式排布支票各字段
// 预览模式直接使用像素坐标；打印模式换算为毫米
func Build(rec models.ChequeRecord, layout models.Layout, mode Mode) (*Document, error) {
	date, err := FormatDate(rec.Date, mode)
	if err != nil {
		return nil, err
	}

	unit := func(px int) float64 {
		if mode == Print {
			return PxToMm(float64(px))
		}
		return float64(px)
	}

	c := layout.Coordinates
	doc := &Document{
		Mode:       mode,
		Background: layout.BackgroundImage,
		Texts: []Text{
			{Field: FieldPayee, Value: rec.PayeeName, X: unit(c.PayeeX), Y: unit(c.PayeeY)},
			{Field: FieldAmountWords, Value: rec.AmountWords, X: unit(c.AmountWordsX), Y: unit(c.AmountWordsY)},
			{Field: FieldAmount, Value: amount.Format(rec.Amount), X: unit(c.AmountX), Y: unit(c.AmountY)},
			{Field: FieldDate, Value: date, X: unit(c.DateX), Y: unit(c.DateY)},
			{Field: FieldCaption, Value: Caption, X: unit(c.AcPayeeX), Y: unit(c.AcPayeeY), Bold: true},
		},
	}
	if mode == Print {
		doc.Width, doc.Height = PageWidthMm, PageHeightMm
	} else {
		doc.Width, doc.Height = CanvasWidthPx, CanvasHeightPx
	}
	return doc, nil
}

// Lookup 按字段查找文字
func (d *Document) Lookup(f Field) (Text, error) {
	for _, t := range d.Texts {
		if t.Field == f {
			return t, nil
		}
	}
	return Text{}, fmt.Errorf("字段 %s 不存在", f)
}
