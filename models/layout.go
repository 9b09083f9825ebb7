package models

import (
	"time"
)

// Coordinates 各字段在支票上的像素坐标
type Coordinates struct {
	PayeeX       int `json:"payeeX" gorm:"not null;default:0" validate:"gte=0"`
	PayeeY       int `json:"payeeY" gorm:"not null;default:0" validate:"gte=0"`
	AmountX      int `json:"amountX" gorm:"not null;default:0" validate:"gte=0"`
	AmountY      int `json:"amountY" gorm:"not null;default:0" validate:"gte=0"`
	AmountWordsX int `json:"amountWordsX" gorm:"not null;default:0" validate:"gte=0"`
	AmountWordsY int `json:"amountWordsY" gorm:"not null;default:0" validate:"gte=0"`
	DateX        int `json:"dateX" gorm:"not null;default:0" validate:"gte=0"`
	DateY        int `json:"dateY" gorm:"not null;default:0" validate:"gte=0"`
	AcPayeeX     int `json:"acPayeeX" gorm:"not null;default:0" validate:"gte=0"`
	AcPayeeY     int `json:"acPayeeY" gorm:"not null;default:0" validate:"gte=0"`
}

// Layout 银行支票版式（坐标不敏感，明文存储）
type Layout struct {
	ID              string `json:"id" gorm:"primaryKey;size:64"`
	Name            string `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Coordinates     `gorm:"embedded"`
	BackgroundImage string    `json:"backgroundImage,omitempty" gorm:"type:text"` // data URL 或 base64
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// TableName 设置表名
func (Layout) TableName() string {
	return "layouts"
}

// 账户付款字样的默认位置
const (
	DefaultAcPayeeX = 110
	DefaultAcPayeeY = 80
)

// DefaultLayouts 内置的三家银行版式，仅在版式表为空时写入
func DefaultLayouts() []Layout {
	return []Layout{
		{
			ID:   "sbi",
			Name: "State Bank of India",
			Coordinates: Coordinates{
				PayeeX: 60, PayeeY: 35,
				AmountX: 155, AmountY: 35,
				AmountWordsX: 15, AmountWordsY: 45,
				DateX: 155, DateY: 15,
				AcPayeeX: DefaultAcPayeeX, AcPayeeY: DefaultAcPayeeY,
			},
		},
		{
			ID:   "hdfc",
			Name: "HDFC Bank",
			Coordinates: Coordinates{
				PayeeX: 125, PayeeY: 165,
				AmountX: 950, AmountY: 215,
				AmountWordsX: 125, AmountWordsY: 215,
				DateX: 940, DateY: 65,
				AcPayeeX: DefaultAcPayeeX, AcPayeeY: DefaultAcPayeeY,
			},
		},
		{
			ID:   "icici",
			Name: "ICICI Bank",
			Coordinates: Coordinates{
				PayeeX: 62, PayeeY: 36,
				AmountX: 158, AmountY: 36,
				AmountWordsX: 16, AmountWordsY: 46,
				DateX: 158, DateY: 16,
				AcPayeeX: DefaultAcPayeeX, AcPayeeY: DefaultAcPayeeY,
			},
		},
	}
}
