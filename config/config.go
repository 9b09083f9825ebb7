package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 CHEQUE_SERVER_PORT
const EnvPrefix = "CHEQUE"

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Security SecurityConfig `mapstructure:"security"`
	Render   RenderConfig   `mapstructure:"render"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`

	// Sources 实际生效的配置来源，启动时打印
	Sources []string `mapstructure:"-"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
// driver: sqlite（默认，本机文件）| mysql | postgres
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
	SSLMode  string `mapstructure:"sslmode"`
	LogLevel string `mapstructure:"log_level"`
}

// StorageConfig 本地加密存储配置
type StorageConfig struct {
	KeyFile string `mapstructure:"key_file"`
}

// SecurityConfig 应用锁配置
type SecurityConfig struct {
	JWTSecret           string        `mapstructure:"jwt_secret"`
	SessionMinutes      int           `mapstructure:"session_minutes"`
	SessionTTL          time.Duration `mapstructure:"-"`
	UnlockAttempts      int           `mapstructure:"unlock_attempts"`
	UnlockWindowSeconds int           `mapstructure:"unlock_window_seconds"`
	UnlockWindow        time.Duration `mapstructure:"-"`
}

// RenderConfig 预览与打印配置
type RenderConfig struct {
	FontPath        string  `mapstructure:"font_path"`
	BoldFontPath    string  `mapstructure:"bold_font_path"`
	PreviewFontSize float64 `mapstructure:"preview_font_size"`
	CaptionFontSize float64 `mapstructure:"caption_font_size"`
	PrintFontSize   float64 `mapstructure:"print_font_size"`
}

// EmailConfig 邮件配置（用于发送备份文件）
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
	File   string `mapstructure:"file"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > .env > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	var sources []string

	// .env 仅用于补充环境变量，不存在时忽略
	if err := godotenv.Load(); err == nil {
		sources = append(sources, ".env")
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	sources = append(sources, "embedded:default.yaml")

	// 2. 外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", configPath, err)
		}
		sources = append(sources, configPath)
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/chequeprinter")
		externalViper.AddConfigPath("$HOME/.chequeprinter")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("合并外部配置失败: %w", err)
			}
			sources = append(sources, externalViper.ConfigFileUsed())
		}
	}

	// 3. 环境变量覆盖
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.Sources = sources
	cfg.applyDefaults()

	GlobalConfig = &cfg
	return &cfg, nil
}

// applyDefaults 填充缺省值并换算时间
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Security.SessionMinutes <= 0 {
		c.Security.SessionMinutes = 15
	}
	c.Security.SessionTTL = time.Duration(c.Security.SessionMinutes) * time.Minute
	if c.Security.UnlockAttempts <= 0 {
		c.Security.UnlockAttempts = 5
	}
	if c.Security.UnlockWindowSeconds <= 0 {
		c.Security.UnlockWindowSeconds = 60
	}
	c.Security.UnlockWindow = time.Duration(c.Security.UnlockWindowSeconds) * time.Second
	if c.Render.PreviewFontSize <= 0 {
		c.Render.PreviewFontSize = 14
	}
	if c.Render.CaptionFontSize <= 0 {
		c.Render.CaptionFontSize = 12
	}
	if c.Render.PrintFontSize <= 0 {
		c.Render.PrintFontSize = 10
	}
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig(log zerolog.Logger) {
	if GlobalConfig == nil {
		return
	}
	c := GlobalConfig
	ev := log.Info().
		Strs("sources", c.Sources).
		Str("listen", c.Server.Port).
		Str("mode", c.Server.Mode).
		Str("db_driver", c.Database.Driver).
		Str("key_file", c.Storage.KeyFile).
		Bool("email", c.Email.Enabled)
	if c.Database.Driver == "sqlite" {
		ev = ev.Str("db_path", c.Database.Path)
	} else {
		ev = ev.Str("db", fmt.Sprintf("%s@%s:%s/%s", c.Database.Username, c.Database.Host, c.Database.Port, c.Database.DBName))
	}
	ev.Msg("当前配置")
}
