package router

import (
	"chequeprinter/api"
	"chequeprinter/config"
	_ "chequeprinter/docs"
	"chequeprinter/middleware"
	"chequeprinter/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc *service.Services) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	v1 := r.Group("/api/v1")
	// 设置了 PIN 时，除状态查询与解锁外均需解锁会话
	v1.Use(middleware.AppLock(svc.Lock.Enabled, "/api/v1/lock/status", "/api/v1/lock/unlock"))
	{
		// 应用锁
		lockHandler := api.NewLockHandler(svc.Lock, cfg.Security.SessionTTL)
		lock := v1.Group("/lock")
		{
			lock.GET("/status", lockHandler.Status)
			lock.POST("/pin", lockHandler.SetPIN)
			lock.DELETE("/pin", lockHandler.RemovePIN)
			lock.POST("/unlock", middleware.UnlockRateLimit(cfg.Security.UnlockAttempts, cfg.Security.UnlockWindow), lockHandler.Unlock)
		}

		// 金额大写
		v1.GET("/amount/words", api.NewAmountHandler().Words)

		// 支票
		chequeHandler := api.NewChequeHandler(svc.Cheques)
		cheques := v1.Group("/cheques")
		{
			cheques.POST("", chequeHandler.Create)
			cheques.GET("", chequeHandler.List)
			cheques.POST("/preview", chequeHandler.DraftPreview)
			cheques.POST("/pdf", chequeHandler.DraftPDF)
			cheques.GET("/export/excel", chequeHandler.ExportExcel)
			cheques.GET("/export/csv", chequeHandler.ExportCSV)
			cheques.GET("/:id", chequeHandler.Get)
			cheques.DELETE("/:id", chequeHandler.Delete)
			cheques.GET("/:id/preview", chequeHandler.Preview)
			cheques.GET("/:id/pdf", chequeHandler.PDF)
		}

		// 版式
		layoutHandler := api.NewLayoutHandler(svc.Layouts)
		layouts := v1.Group("/layouts")
		{
			layouts.GET("", layoutHandler.List)
			layouts.POST("", layoutHandler.Create)
			layouts.POST("/import", layoutHandler.Import)
			layouts.GET("/:id", layoutHandler.Get)
			layouts.PUT("/:id", layoutHandler.Update)
			layouts.DELETE("/:id", layoutHandler.Delete)
			layouts.GET("/:id/export", layoutHandler.Export)
		}

		// 备份
		backupHandler := api.NewBackupHandler(svc.Backup)
		backup := v1.Group("/backup")
		{
			backup.GET("", backupHandler.Download)
			backup.POST("/restore", backupHandler.Restore)
			backup.POST("/email", backupHandler.Email)
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
