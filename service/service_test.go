package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"chequeprinter/config"
	"chequeprinter/database"
	"chequeprinter/keystore"
	"chequeprinter/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

var testRenderConfig = config.RenderConfig{PreviewFontSize: 14, CaptionFontSize: 12, PrintFontSize: 10}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := fmt.Sprintf("svc_%s_%d", strings.ReplaceAll(t.Name(), "/", "_"), dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	key, err := keystore.New(bytes.Repeat([]byte{7}, keystore.KeySize))
	require.NoError(t, err)
	return store.New(db, key)
}

// seededStore 已写入默认版式的存储
func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := setupTestStore(t)
	_, err := NewLayoutService(st, zerolog.Nop()).SeedDefaults(context.Background())
	require.NoError(t, err)
	return st
}

func svcTime() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
}

// clock 每次调用前进一秒
func clock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

func newChequeService(st *store.Store) *ChequeService {
	s := NewChequeService(st, testRenderConfig, zerolog.Nop())
	s.now = clock(svcTime())
	return s
}

func chequeInput(payee, amt, layoutID string) ChequeInput {
	return ChequeInput{
		PayeeName: payee,
		Amount:    decimal.RequireFromString(amt),
		Date:      "2024-03-15",
		LayoutID:  layoutID,
	}
}
