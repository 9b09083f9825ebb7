package models

import "time"

// BackupVersion 当前备份文件格式版本
const BackupVersion = "1.0"

// Backup 全量备份文件（明文 JSON）
type Backup struct {
	Version    string         `json:"version"`
	ExportDate time.Time      `json:"exportDate"`
	Cheques    []ChequeRecord `json:"cheques"`
	Layouts    []Layout       `json:"layouts"`
}

// LayoutFile 单个版式的导入导出格式，不含 ID
type LayoutFile struct {
	Name        string            `json:"name"`
	Coordinates LayoutFileOffsets `json:"coordinates"`
}

// LayoutFileOffsets 导入时字段可能缺失，用指针区分未提供与 0
type LayoutFileOffsets struct {
	PayeeX       *int `json:"payeeX"`
	PayeeY       *int `json:"payeeY"`
	AmountX      *int `json:"amountX"`
	AmountY      *int `json:"amountY"`
	AmountWordsX *int `json:"amountWordsX"`
	AmountWordsY *int `json:"amountWordsY"`
	DateX        *int `json:"dateX"`
	DateY        *int `json:"dateY"`
	AcPayeeX     *int `json:"acPayeeX,omitempty"`
	AcPayeeY     *int `json:"acPayeeY,omitempty"`
}

// NewLayoutFile 从版式生成导出文件内容
func NewLayoutFile(l Layout) LayoutFile {
	c := l.Coordinates
	return LayoutFile{
		Name: l.Name,
		Coordinates: LayoutFileOffsets{
			PayeeX: &c.PayeeX, PayeeY: &c.PayeeY,
			AmountX: &c.AmountX, AmountY: &c.AmountY,
			AmountWordsX: &c.AmountWordsX, AmountWordsY: &c.AmountWordsY,
			DateX: &c.DateX, DateY: &c.DateY,
			AcPayeeX: &c.AcPayeeX, AcPayeeY: &c.AcPayeeY,
		},
	}
}

// ToCoordinates 缺失字段取 0，账户付款字样缺失时取默认位置
func (o LayoutFileOffsets) ToCoordinates() Coordinates {
	val := func(p *int, def int) int {
		if p == nil {
			return def
		}
		return *p
	}
	return Coordinates{
		PayeeX:       val(o.PayeeX, 0),
		PayeeY:       val(o.PayeeY, 0),
		AmountX:      val(o.AmountX, 0),
		AmountY:      val(o.AmountY, 0),
		AmountWordsX: val(o.AmountWordsX, 0),
		AmountWordsY: val(o.AmountWordsY, 0),
		DateX:        val(o.DateX, 0),
		DateY:        val(o.DateY, 0),
		AcPayeeX:     val(o.AcPayeeX, DefaultAcPayeeX),
		AcPayeeY:     val(o.AcPayeeY, DefaultAcPayeeY),
	}
}
