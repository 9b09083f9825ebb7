package service

import (
	"context"
	"errors"
	"fmt"

	"chequeprinter/models"
	"chequeprinter/store"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// PINInput 设置或修改 PIN
type PINInput struct {
	CurrentPIN string `json:"currentPin" example:"1234"`
	PIN        string `json:"pin" validate:"required,numeric,min=4,max=8" example:"2468"`
}

// LockService 应用锁：PIN 以 bcrypt 哈希保存在设置表
type LockService struct {
	store *store.Store
	log   zerolog.Logger
	cost  int
}

// NewLockService 创建应用锁服务
func NewLockService(st *store.Store, log zerolog.Logger) *LockService {
	return &LockService{store: st, log: log, cost: bcrypt.DefaultCost}
}

// Enabled 是否已设置 PIN
func (s *LockService) Enabled(ctx context.Context) (bool, error) {
	_, ok, err := s.store.Settings.Get(ctx, models.SettingPINHash)
	return ok, err
}

// SetPIN 设置 PIN；已设置时需提供当前 PIN
func (s *LockService) SetPIN(ctx context.Context, in PINInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if err := s.checkCurrent(ctx, in.CurrentPIN); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.PIN), s.cost)
	if err != nil {
		return fmt.Errorf("PIN 加密失败: %w", err)
	}
	if err := s.store.Settings.Put(ctx, models.SettingPINHash, string(hash)); err != nil {
		return err
	}
	s.log.Info().Msg("应用锁 PIN 已更新")
	return nil
}

// RemovePIN 验证当前 PIN 后关闭应用锁
func (s *LockService) RemovePIN(ctx context.Context, current string) error {
	if err := s.Verify(ctx, current); err != nil {
		return err
	}
	if err := s.store.Settings.Delete(ctx, models.SettingPINHash); err != nil {
		return err
	}
	s.log.Info().Msg("应用锁已关闭")
	return nil
}

// Verify 校验 PIN；未设置 PIN 时返回 ErrValidation
func (s *LockService) Verify(ctx context.Context, pin string) error {
	hash, ok, err := s.store.Settings.Get(ctx, models.SettingPINHash)
	if err != nil {
		return err
	}
	if !ok {
		return invalid("未设置应用锁")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPIN
		}
		return fmt.Errorf("校验 PIN 失败: %w", err)
	}
	return nil
}

// checkCurrent 已设置 PIN 时校验当前 PIN
func (s *LockService) checkCurrent(ctx context.Context, current string) error {
	enabled, err := s.Enabled(ctx)
	if err != nil || !enabled {
		return err
	}
	return s.Verify(ctx, current)
}
