// Package store 基于 gorm 的本地持久化：支票密文、版式、设置。
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// Cipher 对称加解密，由 keystore.Key 实现
type Cipher interface {
	Encrypt(plain []byte) (string, error)
	Decrypt(encoded string) ([]byte, error)
}

// Store 聚合各表的存储
type Store struct {
	db       *gorm.DB
	cipher   Cipher
	Cheques  *ChequeStore
	Layouts  *LayoutStore
	Settings *SettingStore
}

// New 创建存储，cipher 用于支票记录的透明加解密
func New(db *gorm.DB, cipher Cipher) *Store {
	return &Store{
		db:       db,
		cipher:   cipher,
		Cheques:  &ChequeStore{db: db, cipher: cipher},
		Layouts:  &LayoutStore{db: db},
		Settings: &SettingStore{db: db},
	}
}

// Transaction 在同一事务中执行多表写入，fn 返回错误时全部回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx, s.cipher))
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
