package store

import (
	"context"
	"errors"
	"fmt"

	"chequeprinter/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingStore 本地设置存储
type SettingStore struct {
	db *gorm.DB
}

// Get 读取设置，不存在时 ok 为 false
func (s *SettingStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	var st models.Setting
	err = s.db.WithContext(ctx).Where("setting_key = ?", key).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取设置失败: %w", err)
	}
	return st.Value, true, nil
}

// Put 写入设置
func (s *SettingStore) Put(ctx context.Context, key, value string) error {
	st := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&st).Error
	if err != nil {
		return fmt.Errorf("保存设置失败: %w", err)
	}
	return nil
}

// Delete 删除设置，不存在时不报错
func (s *SettingStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("setting_key = ?", key).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("删除设置失败: %w", err)
	}
	return nil
}
