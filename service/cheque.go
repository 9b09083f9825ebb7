package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"chequeprinter/amount"
	"chequeprinter/config"
	"chequeprinter/models"
	"chequeprinter/render"
	"chequeprinter/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ChequeInput 新建支票表单
type ChequeInput struct {
	PayeeName string          `json:"payeeName" validate:"required,max=200" example:"John Doe"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	Date      string          `json:"date" validate:"required,datetime=2006-01-02" example:"2024-03-15"`
	LayoutID  string          `json:"layoutId" validate:"required" example:"sbi"`
}

// ChequeService 支票业务
type ChequeService struct {
	store  *store.Store
	render config.RenderConfig
	log    zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewChequeService 创建支票服务
func NewChequeService(st *store.Store, renderCfg config.RenderConfig, log zerolog.Logger) *ChequeService {
	return &ChequeService{
		store:  st,
		render: renderCfg,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Draft 校验表单并生成未保存的支票记录，金额大写由金额推导
// bank 取所选版式的名称
func (s *ChequeService) Draft(ctx context.Context, in ChequeInput) (models.ChequeRecord, models.Layout, error) {
	in.PayeeName = strings.TrimSpace(in.PayeeName)
	in.Date = strings.TrimSpace(in.Date)
	if err := validateStruct(in); err != nil {
		return models.ChequeRecord{}, models.Layout{}, err
	}
	amt, words, err := amountWords(in.Amount)
	if err != nil {
		return models.ChequeRecord{}, models.Layout{}, err
	}

	layout, err := s.store.Layouts.Get(ctx, in.LayoutID)
	if err != nil {
		return models.ChequeRecord{}, models.Layout{}, mapNotFound(err, ErrLayoutNotFound)
	}
	rec := models.ChequeRecord{
		PayeeName:   in.PayeeName,
		Amount:      amt,
		AmountWords: words,
		Date:        in.Date,
		Bank:        layout.Name,
		LayoutID:    layout.ID,
	}
	return rec, layout, nil
}

// amountWords 先按两位小数舍入再校验金额，返回舍入后的金额与大写
func amountWords(d decimal.Decimal) (decimal.Decimal, string, error) {
	amt := d.Round(2)
	if !amt.IsPositive() {
		return decimal.Zero, "", invalid("金额必须大于 0")
	}
	words, err := amount.ToWords(amt)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return amt, words, nil
}

// Create 新建并加密保存支票
func (s *ChequeService) Create(ctx context.Context, in ChequeInput) (models.ChequeRecord, error) {
	rec, _, err := s.Draft(ctx, in)
	if err != nil {
		return models.ChequeRecord{}, err
	}
	rec.ID = s.newID()
	rec.CreatedAt = s.now().UTC()

	if err := s.store.Cheques.Create(ctx, rec); err != nil {
		return models.ChequeRecord{}, err
	}
	s.log.Info().Str("id", rec.ID).Str("layout", rec.LayoutID).Msg("支票已保存")
	return rec, nil
}

// Get 获取支票
func (s *ChequeService) Get(ctx context.Context, id string) (models.ChequeRecord, error) {
	rec, err := s.store.Cheques.Get(ctx, id)
	if err != nil {
		return models.ChequeRecord{}, mapNotFound(err, ErrChequeNotFound)
	}
	return rec, nil
}

// List 列出支票（最新在前），query 不为空时按收款人、银行或金额过滤，不区分大小写
func (s *ChequeService) List(ctx context.Context, query string) ([]models.ChequeRecord, error) {
	list, err := s.store.Cheques.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list, nil
	}

	matched := make([]models.ChequeRecord, 0, len(list))
	for _, rec := range list {
		if matches(rec, query) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func matches(rec models.ChequeRecord, query string) bool {
	return strings.Contains(strings.ToLower(rec.PayeeName), query) ||
		strings.Contains(strings.ToLower(rec.Bank), query) ||
		strings.Contains(rec.Amount.String(), query) ||
		strings.Contains(amount.Fixed(rec.Amount), query)
}

// Delete 删除支票
func (s *ChequeService) Delete(ctx context.Context, id string) error {
	if err := s.store.Cheques.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrChequeNotFound)
	}
	s.log.Info().Str("id", id).Msg("支票已删除")
	return nil
}

// Artifact 预览或打印产物
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	contentTypePNG = "image/png"
	contentTypePDF = "application/pdf"
)

// Document 按已保存支票引用的版式排版
func (s *ChequeService) Document(ctx context.Context, id string, mode render.Mode) (*render.Document, models.ChequeRecord, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, rec, err
	}
	layout, err := s.store.Layouts.Get(ctx, rec.LayoutID)
	if err != nil {
		return nil, rec, mapNotFound(err, ErrLayoutNotFound)
	}
	doc, err := build(rec, layout, mode)
	return doc, rec, err
}

// DraftDocument 对未保存的表单排版
func (s *ChequeService) DraftDocument(ctx context.Context, in ChequeInput, mode render.Mode) (*render.Document, models.ChequeRecord, error) {
	rec, layout, err := s.Draft(ctx, in)
	if err != nil {
		return nil, rec, err
	}
	doc, err := build(rec, layout, mode)
	return doc, rec, err
}

func build(rec models.ChequeRecord, layout models.Layout, mode render.Mode) (*render.Document, error) {
	doc, err := render.Build(rec, layout, mode)
	if errors.Is(err, render.ErrInvalidDate) {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return doc, err
}

// Preview 生成已保存支票的 PNG 预览
func (s *ChequeService) Preview(ctx context.Context, id string) (Artifact, error) {
	doc, rec, err := s.Document(ctx, id, render.Preview)
	if err != nil {
		return Artifact{}, err
	}
	return s.Encode(doc, rec)
}

// PDF 生成已保存支票的打印文件
func (s *ChequeService) PDF(ctx context.Context, id string) (Artifact, error) {
	doc, rec, err := s.Document(ctx, id, render.Print)
	if err != nil {
		return Artifact{}, err
	}
	return s.Encode(doc, rec)
}

// DraftPreview 未保存表单的 PNG 预览
func (s *ChequeService) DraftPreview(ctx context.Context, in ChequeInput) (Artifact, error) {
	doc, rec, err := s.DraftDocument(ctx, in, render.Preview)
	if err != nil {
		return Artifact{}, err
	}
	return s.Encode(doc, rec)
}

// DraftPDF 未保存表单的打印文件
func (s *ChequeService) DraftPDF(ctx context.Context, in ChequeInput) (Artifact, error) {
	doc, rec, err := s.DraftDocument(ctx, in, render.Print)
	if err != nil {
		return Artifact{}, err
	}
	return s.Encode(doc, rec)
}

// Encode 按文档模式输出 PNG 或 PDF，失败时不返回任何字节
func (s *ChequeService) Encode(doc *render.Document, rec models.ChequeRecord) (Artifact, error) {
	var buf bytes.Buffer
	art := Artifact{}
	if doc.Mode == render.Print {
		art.Name, art.ContentType = Filename(rec.PayeeName, s.now(), "pdf"), contentTypePDF
		if err := render.PDF(&buf, doc, render.PrintOptions(s.render, s.log)); err != nil {
			return Artifact{}, err
		}
	} else {
		art.Name, art.ContentType = Filename(rec.PayeeName, s.now(), "png"), contentTypePNG
		if err := render.PNG(&buf, doc, render.PreviewOptions(s.render, s.log)); err != nil {
			return Artifact{}, err
		}
	}
	art.Data = buf.Bytes()
	return art, nil
}

// Filename 下载文件名，如 cheque_John_Doe_1710460800000.pdf
func Filename(payee string, at time.Time, ext string) string {
	return fmt.Sprintf("cheque_%s_%d.%s", safeName(payee), at.UnixMilli(), ext)
}

// safeName 空白及文件名中不安全的字符替换为下划线
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
