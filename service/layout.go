package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chequeprinter/models"
	"chequeprinter/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LayoutInput 新建或修改版式，坐标字段与 Layout 一致平铺
type LayoutInput struct {
	Name string `json:"name" validate:"required,max=100" example:"Axis Bank"`
	models.Coordinates
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// NewLayoutInput 预置账户付款字样默认位置，请求未提供时沿用
func NewLayoutInput() LayoutInput {
	return LayoutInput{Coordinates: models.Coordinates{
		AcPayeeX: models.DefaultAcPayeeX,
		AcPayeeY: models.DefaultAcPayeeY,
	}}
}

// LayoutService 版式业务
type LayoutService struct {
	store *store.Store
	log   zerolog.Logger
	newID func() string
}

// NewLayoutService 创建版式服务
func NewLayoutService(st *store.Store, log zerolog.Logger) *LayoutService {
	return &LayoutService{store: st, log: log, newID: uuid.NewString}
}

// SeedDefaults 版式表为空时写入内置的三家银行版式
// 启动时调用一次；重复调用不会产生重复数据
func (s *LayoutService) SeedDefaults(ctx context.Context) (bool, error) {
	seeded := false
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		n, err := tx.Layouts.Count(ctx)
		if err != nil {
			return fmt.Errorf("统计版式失败: %w", err)
		}
		if n > 0 {
			return nil
		}
		if err := tx.Layouts.CreateBatch(ctx, models.DefaultLayouts()); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.log.Info().Int("count", len(models.DefaultLayouts())).Msg("已写入默认版式")
	}
	return seeded, nil
}

func (in LayoutInput) normalize() (LayoutInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.BackgroundImage = strings.TrimSpace(in.BackgroundImage)
	if err := validateStruct(in); err != nil {
		return in, err
	}
	return in, nil
}

// Create 新建版式
func (s *LayoutService) Create(ctx context.Context, in LayoutInput) (models.Layout, error) {
	in, err := in.normalize()
	if err != nil {
		return models.Layout{}, err
	}
	l := models.Layout{
		ID:              s.newID(),
		Name:            in.Name,
		Coordinates:     in.Coordinates,
		BackgroundImage: in.BackgroundImage,
	}
	if err := s.store.Layouts.Create(ctx, &l); err != nil {
		return models.Layout{}, err
	}
	s.log.Info().Str("id", l.ID).Str("name", l.Name).Msg("版式已创建")
	return l, nil
}

// Update 整体替换版式的名称、坐标与背景图
func (s *LayoutService) Update(ctx context.Context, id string, in LayoutInput) (models.Layout, error) {
	in, err := in.normalize()
	if err != nil {
		return models.Layout{}, err
	}
	l := models.Layout{
		ID:              id,
		Name:            in.Name,
		Coordinates:     in.Coordinates,
		BackgroundImage: in.BackgroundImage,
	}
	if err := s.store.Layouts.Update(ctx, &l); err != nil {
		return models.Layout{}, mapNotFound(err, ErrLayoutNotFound)
	}
	return s.Get(ctx, id)
}

// Get 获取版式
func (s *LayoutService) Get(ctx context.Context, id string) (models.Layout, error) {
	l, err := s.store.Layouts.Get(ctx, id)
	if err != nil {
		return models.Layout{}, mapNotFound(err, ErrLayoutNotFound)
	}
	return l, nil
}

// List 按创建顺序列出版式
func (s *LayoutService) List(ctx context.Context) ([]models.Layout, error) {
	return s.store.Layouts.List(ctx)
}

// Delete 删除版式，引用它的支票保留不动
func (s *LayoutService) Delete(ctx context.Context, id string) error {
	if err := s.store.Layouts.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrLayoutNotFound)
	}
	s.log.Info().Str("id", id).Msg("版式已删除")
	return nil
}

// Export 导出版式文件（名称 + 坐标，不含 ID 与背景图）
func (s *LayoutService) Export(ctx context.Context, id string) (models.LayoutFile, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return models.LayoutFile{}, err
	}
	return models.NewLayoutFile(l), nil
}

// ExportFilename 版式文件名，如 HDFC_Bank_layout.json
func ExportFilename(name string) string {
	return safeName(name) + "_layout.json"
}

// Import 由版式文件新建版式
func (s *LayoutService) Import(ctx context.Context, data []byte) (models.Layout, error) {
	var f models.LayoutFile
	if err := json.Unmarshal(data, &f); err != nil {
		return models.Layout{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	in := LayoutInput{Name: f.Name, Coordinates: f.Coordinates.ToCoordinates()}
	return s.Create(ctx, in)
}
