package models

import "time"

// Setting 本地偏好设置（键值对）
type Setting struct {
	Key       string    `json:"key" gorm:"column:setting_key;primaryKey;size:64"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Setting) TableName() string {
	return "settings"
}

// 设置项键名
const (
	SettingPINHash = "lock.pin_hash"
)
