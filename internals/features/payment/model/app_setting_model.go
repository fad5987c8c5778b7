package model

import "time"

// Kunci setting gateway yang dikenal.
const (
	SettingToyyibPaySecretKey    = "toyyibpay_secret_key"
	SettingToyyibPayCategoryCode = "toyyibpay_category_code"
)

// AppSettingModel menyimpan konfigurasi runtime (kredensial ToyyibPay dsb.)
// yang bisa diubah admin tanpa redeploy. Env var jadi fallback.
type AppSettingModel struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppSettingModel) TableName() string {
	return "app_settings"
}
