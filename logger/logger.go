// Package logger 构建应用使用的 zerolog 日志实例。
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"chequeprinter/config"

	"github.com/rs/zerolog"
)

const filePerm = 0664

// Logger 日志实例及其持有的文件句柄
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New 按配置创建日志：控制台或 JSON 输出，可选同时写入文件
func New(cfg config.LogConfig) (*Logger, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter 同 New，允许替换标准输出（测试用）
func NewWithWriter(cfg config.LogConfig, out io.Writer) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var w io.Writer = out
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	l := &Logger{}
	if cfg.File != "" {
		l.file, err = os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		// 文件中始终写 JSON，便于检索
		w = zerolog.MultiLevelWriter(w, zerolog.SyncWriter(l.file))
	}

	l.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Close 关闭日志文件
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("无效的日志级别 %q: %w", s, err)
	}
	return level, nil
}
