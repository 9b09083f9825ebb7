package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// PNG 将预览文档绘制为 PNG
// 背景图解码失败不影响输出，只记录警告
func PNG(w io.Writer, doc *Document, opts Options) error {
	if doc == nil {
		return errors.New("文档为空")
	}
	if doc.Mode != Preview {
		return fmt.Errorf("PNG 仅支持预览模式，当前为 %s", doc.Mode)
	}

	width, height := int(doc.Width), int(doc.Height)
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	if doc.Background != "" {
		img, err := DecodeBackground(doc.Background)
		if err != nil {
			opts.Logger.Warn().Err(err).Msg("背景图解码失败，忽略背景")
		} else {
			dc.DrawImage(fitBackground(img, width, height), 0, 0)
		}
	}

	regular, bold := opts.faces()
	dc.SetColor(color.Black)
	for _, t := range doc.Texts {
		face := regular
		if t.Field == FieldCaption || t.Bold {
			face = bold
		}
		value := t.Value
		if f, ok := face[opts.size(t)]; ok {
			dc.SetFontFace(f)
		} else {
			// 内置 basicfont 只有 ASCII 字形
			dc.SetFontFace(basicfont.Face7x13)
			value = builtinText(value)
		}
		dc.DrawString(value, t.X, t.Y)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return nil
}

// sizedFaces 同一字体不同字号
type sizedFaces map[float64]font.Face

// faces 加载预览所需字号的常规与粗体字形，未配置字体时返回 nil
func (o Options) faces() (regular, bold sizedFaces) {
	regularPath, boldPath := o.fonts()
	if regularPath == "" {
		return nil, nil
	}
	load := func(path string) sizedFaces {
		faces := sizedFaces{}
		for _, size := range []float64{o.FontSize, o.CaptionFontSize} {
			if size <= 0 {
				continue
			}
			// gg 按 72 DPI 换算磅值，像素字号可直接使用
			face, err := gg.LoadFontFace(path, size)
			if err != nil {
				o.Logger.Warn().Err(err).Str("font", path).Msg("加载字体失败，使用内置字体")
				return nil
			}
			faces[size] = face
		}
		return faces
	}
	regular = load(regularPath)
	if regular == nil {
		return nil, nil
	}
	if bold = load(boldPath); bold == nil {
		bold = regular
	}
	return regular, bold
}
