package api

import (
	"errors"
	"net/http/httptest"
	"testing"

	"chequeprinter/config"
	"chequeprinter/service"
	"chequeprinter/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock, func() {
		sqlDB.Close()
	}
}

func TestChequeHandler_List_DBError(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `cheques`").
		WillReturnError(errors.New("connection refused"))

	config.GlobalConfig = &config.Config{Server: config.ServerConfig{Mode: "release"}}
	defer func() { config.GlobalConfig = nil }()

	st := store.New(db, testKey(t))
	router := gin.New()
	router.GET("/cheques", NewChequeHandler(service.NewChequeService(st, testRender, zerolog.Nop())).List)

	req := httptest.NewRequest("GET", "/cheques", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "查询支票失败")
	assert.NotContains(t, w.Body.String(), "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutHandler_Get_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `layouts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	st := store.New(db, testKey(t))
	router := gin.New()
	router.GET("/layouts/:id", NewLayoutHandler(service.NewLayoutService(st, zerolog.Nop())).Get)

	req := httptest.NewRequest("GET", "/layouts/axis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "版式不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}
