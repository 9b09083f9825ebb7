package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:router_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	key, err := keystore.New(bytes.Repeat([]byte{3}, keystore.KeySize))
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Security: config.SecurityConfig{
			JWTSecret:      "router-test-secret",
			SessionTTL:     time.Minute,
			UnlockAttempts: 2,
			UnlockWindow:   time.Minute,
		},
		Render: config.RenderConfig{PreviewFontSize: 14, CaptionFontSize: 12, PrintFontSize: 10},
	}
	middleware.InitJWT(cfg)

	svc := service.New(cfg, store.New(db, key), zerolog.Nop())
	_, err = svc.Layouts.SeedDefaults(t.Context())
	require.NoError(t, err)
	return SetupRouter(cfg, svc)
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := serve(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter(t)
	w := serve(r, http.MethodOptions, "/api/v1/cheques", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestSwaggerDoc(t *testing.T) {
	r := setupRouter(t)
	w := serve(r, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/cheques/{id}/pdf")
}

func TestRoutes_Registered(t *testing.T) {
	r := setupRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/layouts", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)

	w = serve(r, http.MethodGet, "/api/v1/amount/words?amount=100", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "One Hundred Rupees Only")

	w = serve(r, http.MethodGet, "/api/v1/amount/words?amount=9223372036854775808", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/api/v1/cheques", `{"payeeName":"Tiny","amount":"0.004","date":"2024-03-15","layoutId":"sbi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/cheques/export/csv", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/cheques/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppLock_Wired(t *testing.T) {
	r := setupRouter(t)

	w := serve(r, http.MethodPost, "/api/v1/lock/pin", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 设置 PIN 后未解锁的请求被拒绝
	w = serve(r, http.MethodGet, "/api/v1/cheques", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 状态查询无需解锁
	w = serve(r, http.MethodGet, "/api/v1/lock/status", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// 失败次数达到上限后限流
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/api/v1/lock/unlock", `{"pin":"0000"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/api/v1/lock/unlock", `{"pin":"0000"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/api/v1/lock/unlock", `{"pin":"1234"}`).Code)
}
