package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"chequeprinter/config"
	"chequeprinter/database"
	"chequeprinter/keystore"
	"chequeprinter/logger"
	"chequeprinter/middleware"
	"chequeprinter/router"
	"chequeprinter/service"
	"chequeprinter/store"
)

// @title 支票打印 API
// @version 1.0
// @description 本机支票填写、预览、打印与记录管理 API，数据加密保存在本地
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听地址，如: 8080 或 127.0.0.1:8080")
	flag.StringVar(&port, "p", "", "监听地址（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("支票打印 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()
	log := l.Logger

	// 命令行参数覆盖监听地址
	if port != "" {
		// 仅端口号时自动添加冒号前缀
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Info().Str("listen", port).Msg("命令行指定监听地址")
	}

	// 打印配置信息
	config.PrintConfig(log)

	// 本地加密密钥
	key, created, err := keystore.LoadOrGenerate(cfg.Storage.KeyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("加载加密密钥失败")
	}
	if created {
		log.Warn().Str("key_file", cfg.Storage.KeyFile).Msg("已生成新的加密密钥，请妥善备份")
	}

	// 初始化数据库
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("数据库初始化失败")
	}
	st := store.New(db, key)

	svc := service.New(cfg, st, log)

	// 首次启动写入内置版式
	seeded, err := svc.Layouts.SeedDefaults(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("写入内置版式失败")
	}
	if seeded {
		log.Info().Msg("已写入内置银行版式")
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	// 设置路由
	r := router.SetupRouter(cfg, svc)

	log.Info().
		Str("api", fmt.Sprintf("http://%s/api/v1/", displayAddr(cfg.Server.Port))).
		Str("swagger", fmt.Sprintf("http://%s/swagger/index.html", displayAddr(cfg.Server.Port))).
		Msg("支票打印服务已启动")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
}

// displayAddr 仅有端口时补全主机名
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
