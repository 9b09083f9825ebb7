package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"chequeprinter/config"
	"chequeprinter/database"
	"chequeprinter/keystore"
	"chequeprinter/middleware"
	"chequeprinter/service"
	"chequeprinter/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func testKey(t *testing.T) *keystore.Key {
	t.Helper()
	key, err := keystore.New(bytes.Repeat([]byte{9}, keystore.KeySize))
	require.NoError(t, err)
	return key
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := fmt.Sprintf("api_%s_%d", strings.ReplaceAll(t.Name(), "/", "_"), dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	st := store.New(db, testKey(t))
	_, err = service.NewLayoutService(st, zerolog.Nop()).SeedDefaults(context.Background())
	require.NoError(t, err)
	return st
}

var testRender = config.RenderConfig{PreviewFontSize: 14, CaptionFontSize: 12, PrintFontSize: 10}

// newTestRouter 按正式路由注册全部处理器，lock 为 true 时启用应用锁中间件
func newTestRouter(t *testing.T, st *store.Store, lock bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.InitJWT(&config.Config{Security: config.SecurityConfig{JWTSecret: "api-test-secret"}})

	log := zerolog.Nop()
	cheques := NewChequeHandler(service.NewChequeService(st, testRender, log))
	layouts := NewLayoutHandler(service.NewLayoutService(st, log))
	backup := NewBackupHandler(service.NewBackupService(st, nil, log))
	lockSvc := service.NewLockService(st, log)
	lockHandler := NewLockHandler(lockSvc, 15*time.Minute)

	r := gin.New()
	v1 := r.Group("/api/v1")
	if lock {
		v1.Use(middleware.AppLock(lockSvc.Enabled, "/api/v1/lock/status", "/api/v1/lock/unlock"))
	}
	v1.GET("/lock/status", lockHandler.Status)
	v1.POST("/lock/pin", lockHandler.SetPIN)
	v1.DELETE("/lock/pin", lockHandler.RemovePIN)
	v1.POST("/lock/unlock", middleware.UnlockRateLimit(3, time.Minute), lockHandler.Unlock)
	v1.GET("/amount/words", NewAmountHandler().Words)

	v1.POST("/cheques", cheques.Create)
	v1.GET("/cheques", cheques.List)
	v1.POST("/cheques/preview", cheques.DraftPreview)
	v1.POST("/cheques/pdf", cheques.DraftPDF)
	v1.GET("/cheques/export/excel", cheques.ExportExcel)
	v1.GET("/cheques/export/csv", cheques.ExportCSV)
	v1.GET("/cheques/:id", cheques.Get)
	v1.DELETE("/cheques/:id", cheques.Delete)
	v1.GET("/cheques/:id/preview", cheques.Preview)
	v1.GET("/cheques/:id/pdf", cheques.PDF)

	v1.GET("/layouts", layouts.List)
	v1.POST("/layouts", layouts.Create)
	v1.POST("/layouts/import", layouts.Import)
	v1.GET("/layouts/:id", layouts.Get)
	v1.PUT("/layouts/:id", layouts.Update)
	v1.DELETE("/layouts/:id", layouts.Delete)
	v1.GET("/layouts/:id/export", layouts.Export)

	v1.GET("/backup", backup.Download)
	v1.POST("/backup/restore", backup.Restore)
	v1.POST("/backup/email", backup.Email)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}
