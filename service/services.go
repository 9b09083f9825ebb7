package service

import (
	"chequeprinter/config"
	"chequeprinter/store"

	"github.com/rs/zerolog"
)

// Services 应用的全部业务服务
type Services struct {
	Cheques *ChequeService
	Layouts *LayoutService
	Backup  *BackupService
	Lock    *LockService
}

// New 基于同一存储创建全部服务
func New(cfg *config.Config, st *store.Store, log zerolog.Logger) *Services {
	return &Services{
		Cheques: NewChequeService(st, cfg.Render, log.With().Str("component", "cheque").Logger()),
		Layouts: NewLayoutService(st, log.With().Str("component", "layout").Logger()),
		Backup:  NewBackupService(st, NewEmailService(&cfg.Email), log.With().Str("component", "backup").Logger()),
		Lock:    NewLockService(st, log.With().Str("component", "lock").Logger()),
	}
}
