package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chequeprinter/models"
	"chequeprinter/store"

	"github.com/rs/zerolog"
)

// RestoreResult 恢复结果
type RestoreResult struct {
	Cheques int `json:"cheques"`
	Layouts int `json:"layouts"`
}

// BackupService 全量备份与恢复
type BackupService struct {
	store *store.Store
	email *EmailService
	log   zerolog.Logger
	now   func() time.Time
}

// NewBackupService 创建备份服务，email 为空时不支持邮件发送
func NewBackupService(st *store.Store, email *EmailService, log zerolog.Logger) *BackupService {
	return &BackupService{store: st, email: email, log: log, now: time.Now}
}

// Export 导出全部支票（明文）与版式
func (s *BackupService) Export(ctx context.Context) (models.Backup, error) {
	cheques, err := s.store.Cheques.List(ctx)
	if err != nil {
		return models.Backup{}, err
	}
	layouts, err := s.store.Layouts.List(ctx)
	if err != nil {
		return models.Backup{}, err
	}
	return models.Backup{
		Version:    models.BackupVersion,
		ExportDate: s.now().UTC(),
		Cheques:    cheques,
		Layouts:    layouts,
	}, nil
}

// ExportFile 导出为备份文件内容
func (s *BackupService) ExportFile(ctx context.Context) (name string, data []byte, err error) {
	b, err := s.Export(ctx)
	if err != nil {
		return "", nil, err
	}
	data, err = json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("序列化备份失败: %w", err)
	}
	return BackupFilename(b.ExportDate), data, nil
}

// BackupFilename 备份文件名，如 chequeprinter-backup-2024-03-15.json
func BackupFilename(at time.Time) string {
	return "chequeprinter-backup-" + at.Format(models.DateLayout) + ".json"
}

// Restore 校验备份文件后在同一事务中写入全部支票与版式
// 同 ID 记录被覆盖；任一条失败则全部回滚
func (s *BackupService) Restore(ctx context.Context, data []byte) (RestoreResult, error) {
	var b models.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return RestoreResult{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if b.Version != models.BackupVersion {
		return RestoreResult{}, fmt.Errorf("%w: 不支持的备份版本 %q", ErrDecode, b.Version)
	}

	for i := range b.Cheques {
		if err := normalizeRecord(&b.Cheques[i]); err != nil {
			return RestoreResult{}, fmt.Errorf("第 %d 条支票: %w", i+1, err)
		}
	}
	for i := range b.Layouts {
		if err := normalizeLayout(&b.Layouts[i]); err != nil {
			return RestoreResult{}, fmt.Errorf("第 %d 个版式: %w", i+1, err)
		}
	}

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		for i := range b.Layouts {
			if err := tx.Layouts.Upsert(ctx, &b.Layouts[i]); err != nil {
				return err
			}
		}
		for _, rec := range b.Cheques {
			if err := tx.Cheques.Upsert(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return RestoreResult{}, err
	}

	res := RestoreResult{Cheques: len(b.Cheques), Layouts: len(b.Layouts)}
	s.log.Info().Int("cheques", res.Cheques).Int("layouts", res.Layouts).Msg("备份已恢复")
	return res, nil
}

// normalizeRecord 校验导入的支票，金额大写由金额重新推导
func normalizeRecord(rec *models.ChequeRecord) error {
	rec.ID = strings.TrimSpace(rec.ID)
	rec.PayeeName = strings.TrimSpace(rec.PayeeName)
	if rec.ID == "" {
		return invalid("id 不能为空")
	}
	if rec.PayeeName == "" {
		return invalid("payeeName 不能为空")
	}
	amt, words, err := amountWords(rec.Amount)
	if err != nil {
		return err
	}
	if _, err := time.Parse(models.DateLayout, rec.Date); err != nil {
		return invalid("date 格式错误，应为: %s", models.DateLayout)
	}
	rec.Amount, rec.AmountWords = amt, words
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return nil
}

func normalizeLayout(l *models.Layout) error {
	l.ID = strings.TrimSpace(l.ID)
	l.Name = strings.TrimSpace(l.Name)
	if l.ID == "" {
		return invalid("id 不能为空")
	}
	return validateStruct(l)
}

// Email 将备份文件作为附件发送到指定邮箱
func (s *BackupService) Email(ctx context.Context, to string) error {
	if s.email == nil {
		return fmt.Errorf("邮件服务未配置")
	}
	if err := validate.Var(to, "required,email"); err != nil {
		return invalid("邮箱地址无效")
	}
	b, err := s.Export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化备份失败: %w", err)
	}
	if err := s.email.SendBackup(to, BackupFilename(b.ExportDate), data, len(b.Cheques), len(b.Layouts)); err != nil {
		return err
	}
	s.log.Info().Str("to", to).Msg("备份邮件已发送")
	return nil
}
