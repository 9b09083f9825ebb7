package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChequeRecord 支票记录（明文形态，仅在内存与导出文件中出现）
type ChequeRecord struct {
	ID          string          `json:"id"`
	PayeeName   string          `json:"payeeName"`
	Amount      decimal.Decimal `json:"amount"`
	AmountWords string          `json:"amountWords"`
	Date        string          `json:"date"` // 2006-01-02
	Bank        string          `json:"bank"`
	LayoutID    string          `json:"layoutId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// StoredCheque 支票落库形态：整条记录序列化后加密，只保留主键明文
type StoredCheque struct {
	ID   string `gorm:"primaryKey;size:36"`
	Data string `gorm:"type:text;not null"` // base64(iv || ciphertext)
}

// TableName 设置表名
func (StoredCheque) TableName() string {
	return "cheques"
}

// DateLayout 支票日期格式
const DateLayout = "2006-01-02"
