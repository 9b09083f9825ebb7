package store

import (
	"context"
	"fmt"
	"time"

	"chequeprinter/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LayoutStore 版式存储（明文）
type LayoutStore struct {
	db *gorm.DB
}

// Create 新增版式
func (s *LayoutStore) Create(ctx context.Context, l *models.Layout) error {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("保存版式失败: %w", err)
	}
	return nil
}

// CreateBatch 批量新增
func (s *LayoutStore) CreateBatch(ctx context.Context, layouts []models.Layout) error {
	if len(layouts) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&layouts).Error; err != nil {
		return fmt.Errorf("保存版式失败: %w", err)
	}
	return nil
}

// Upsert 按 ID 写入，已存在则覆盖
func (s *LayoutStore) Upsert(ctx context.Context, l *models.Layout) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(l).Error
	if err != nil {
		return fmt.Errorf("保存版式失败: %w", err)
	}
	return nil
}

// Update 整体更新名称、坐标与背景图
func (s *LayoutStore) Update(ctx context.Context, l *models.Layout) error {
	l.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(&models.Layout{ID: l.ID}).
		Select("name", "payee_x", "payee_y", "amount_x", "amount_y",
			"amount_words_x", "amount_words_y", "date_x", "date_y",
			"ac_payee_x", "ac_payee_y", "background_image", "updated_at").
		Updates(l)
	if res.Error != nil {
		return fmt.Errorf("更新版式失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get 获取单个版式
func (s *LayoutStore) Get(ctx context.Context, id string) (models.Layout, error) {
	var l models.Layout
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return l, notFound(err)
	}
	return l, nil
}

// List 获取全部版式，按创建顺序
func (s *LayoutStore) List(ctx context.Context) ([]models.Layout, error) {
	var list []models.Layout
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询版式失败: %w", err)
	}
	return list, nil
}

// Delete 删除版式，不级联处理引用它的支票
func (s *LayoutStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Layout{})
	if res.Error != nil {
		return fmt.Errorf("删除版式失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count 版式总数
func (s *LayoutStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Layout{}).Count(&n).Error
	return n, err
}
