package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"chequeprinter/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChequeStore 支票记录存储：整条记录 JSON 序列化后加密入库
type ChequeStore struct {
	db     *gorm.DB
	cipher Cipher
}

// Seal 序列化并加密为落库行
func (s *ChequeStore) Seal(rec models.ChequeRecord) (models.StoredCheque, error) {
	plain, err := json.Marshal(rec)
	if err != nil {
		return models.StoredCheque{}, fmt.Errorf("序列化支票失败: %w", err)
	}
	data, err := s.cipher.Encrypt(plain)
	if err != nil {
		return models.StoredCheque{}, fmt.Errorf("加密支票失败: %w", err)
	}
	return models.StoredCheque{ID: rec.ID, Data: data}, nil
}

// Open 解密并反序列化落库行
func (s *ChequeStore) Open(row models.StoredCheque) (models.ChequeRecord, error) {
	var rec models.ChequeRecord
	plain, err := s.cipher.Decrypt(row.Data)
	if err != nil {
		return rec, fmt.Errorf("解密支票 %s 失败: %w", row.ID, err)
	}
	if err := json.Unmarshal(plain, &rec); err != nil {
		return rec, fmt.Errorf("解析支票 %s 失败: %w", row.ID, err)
	}
	return rec, nil
}

// Create 新增支票
func (s *ChequeStore) Create(ctx context.Context, rec models.ChequeRecord) error {
	row, err := s.Seal(rec)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("保存支票失败: %w", err)
	}
	return nil
}

// Upsert 按 ID 写入，已存在则覆盖（恢复备份时使用）
func (s *ChequeStore) Upsert(ctx context.Context, rec models.ChequeRecord) error {
	row, err := s.Seal(rec)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("保存支票失败: %w", err)
	}
	return nil
}

// Get 获取单条支票
func (s *ChequeStore) Get(ctx context.Context, id string) (models.ChequeRecord, error) {
	var row models.StoredCheque
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.ChequeRecord{}, notFound(err)
	}
	return s.Open(row)
}

// List 获取全部支票，按创建时间倒序
func (s *ChequeStore) List(ctx context.Context) ([]models.ChequeRecord, error) {
	var rows []models.StoredCheque
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询支票失败: %w", err)
	}

	list := make([]models.ChequeRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := s.Open(row)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Delete 删除支票
func (s *ChequeStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StoredCheque{})
	if res.Error != nil {
		return fmt.Errorf("删除支票失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count 支票总数
func (s *ChequeStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.StoredCheque{}).Count(&n).Error
	return n, err
}
