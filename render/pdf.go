package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

const (
	coreFontFamily   = "Helvetica"
	customFontFamily = "Cheque"
	backgroundName   = "background"
)

// PDF 将打印文档写为单页横向 PDF（8.5in x 3.5in）
// 各字段与预览使用同一组坐标，换算为毫米
func PDF(w io.Writer, doc *Document, opts Options) error {
	if doc == nil {
		return errors.New("文档为空")
	}
	if doc.Mode != Print {
		return fmt.Errorf("PDF 仅支持打印模式，当前为 %s", doc.Mode)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: doc.Height, Ht: doc.Width},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Cheque", true)
	pdf.AddPage()

	if doc.Background != "" {
		if err := drawBackground(pdf, doc); err != nil {
			opts.Logger.Warn().Err(err).Msg("背景图解码失败，忽略背景")
		}
	}

	family := coreFontFamily
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if regular, bold := opts.fonts(); regular != "" {
		family = customFontFamily
		pdf.AddUTF8Font(family, "", regular)
		pdf.AddUTF8Font(family, "B", bold)
		translate = func(s string) string { return s }
	}

	pdf.SetTextColor(0, 0, 0)
	for _, t := range doc.Texts {
		style := ""
		if t.Bold {
			style = "B"
		}
		pdf.SetFont(family, style, opts.size(t))
		value := t.Value
		if family == coreFontFamily {
			value = translate(builtinText(value))
		}
		pdf.Text(t.X, t.Y, value)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("生成 PDF 失败: %w", err)
	}
	return pdf.Output(w)
}

// drawBackground 背景图铺满整页
func drawBackground(pdf *fpdf.Fpdf, doc *Document) error {
	img, err := DecodeBackground(doc.Background)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("%w: %v", ErrBackground, err)
	}
	opt := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(backgroundName, opt, &buf)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackground, err)
	}
	pdf.ImageOptions(backgroundName, 0, 0, doc.Width, doc.Height, false, opt, 0, "")
	return nil
}
