package render

import (
	"os"
	"strings"

	"chequeprinter/amount"
	"chequeprinter/config"

	"github.com/rs/zerolog"
)

// asciiSymbol 内置字体没有卢比符号时的替代写法
const asciiSymbol = "Rs."

// Options 输出选项
type Options struct {
	// FontPath TTF 字体路径，为空时使用内置字体
	FontPath     string
	BoldFontPath string
	// FontSize 字段字号：预览为像素，打印为磅
	FontSize        float64
	CaptionFontSize float64
	Logger          zerolog.Logger
}

// PreviewOptions 由配置生成预览选项
func PreviewOptions(cfg config.RenderConfig, log zerolog.Logger) Options {
	return Options{
		FontPath:        cfg.FontPath,
		BoldFontPath:    cfg.BoldFontPath,
		FontSize:        cfg.PreviewFontSize,
		CaptionFontSize: cfg.CaptionFontSize,
		Logger:          log,
	}
}

// PrintOptions 由配置生成打印选项，账户付款字样略小
func PrintOptions(cfg config.RenderConfig, log zerolog.Logger) Options {
	caption := cfg.PrintFontSize
	if cfg.PreviewFontSize > 0 {
		caption = cfg.PrintFontSize * cfg.CaptionFontSize / cfg.PreviewFontSize
	}
	return Options{
		FontPath:        cfg.FontPath,
		BoldFontPath:    cfg.BoldFontPath,
		FontSize:        cfg.PrintFontSize,
		CaptionFontSize: caption,
		Logger:          log,
	}
}

// fonts 返回可用的常规与粗体字体路径，文件不存在时记录警告并返回空
func (o Options) fonts() (regular, bold string) {
	if o.FontPath == "" {
		return "", ""
	}
	if _, err := os.Stat(o.FontPath); err != nil {
		o.Logger.Warn().Err(err).Str("font", o.FontPath).Msg("字体文件不可用，使用内置字体")
		return "", ""
	}
	bold = o.FontPath
	if o.BoldFontPath != "" {
		if _, err := os.Stat(o.BoldFontPath); err == nil {
			bold = o.BoldFontPath
		}
	}
	return o.FontPath, bold
}

func (o Options) size(t Text) float64 {
	if t.Field == FieldCaption && o.CaptionFontSize > 0 {
		return o.CaptionFontSize
	}
	return o.FontSize
}

// builtinText 内置字体只覆盖 ASCII/Latin-1
func builtinText(s string) string {
	return strings.ReplaceAll(s, amount.Symbol, asciiSymbol)
}
