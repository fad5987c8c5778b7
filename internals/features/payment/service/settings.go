package service

import (
	"log"

	"gorm.io/gorm"

	"celikkalam_backend/internals/configs"
	"celikkalam_backend/internals/features/payment/model"
)

// GatewayCredentials hasil resolve kredensial ToyyibPay.
type GatewayCredentials struct {
	SecretKey    string
	CategoryCode string
}

// ResolveGatewayCredentials membaca kredensial dari app_settings, fallback ke env.
// Dua-duanya kosong = gateway belum dikonfigurasi admin.
func ResolveGatewayCredentials(db *gorm.DB) (GatewayCredentials, bool) {
	creds := GatewayCredentials{
		SecretKey:    configs.ToyyibPaySecretKey,
		CategoryCode: configs.ToyyibPayCategory,
	}

	var rows []model.AppSettingModel
	err := db.Where("key IN ?", []string{
		model.SettingToyyibPaySecretKey,
		model.SettingToyyibPayCategoryCode,
	}).Find(&rows).Error
	if err != nil {
		// app_settings opsional; env fallback tetap jalan
		log.Printf("[WARN] gagal baca app_settings: %v", err)
	}

	for _, row := range rows {
		switch row.Key {
		case model.SettingToyyibPaySecretKey:
			if row.Value != "" {
				creds.SecretKey = row.Value
			}
		case model.SettingToyyibPayCategoryCode:
			if row.Value != "" {
				creds.CategoryCode = row.Value
			}
		}
	}

	configured := creds.SecretKey != "" && creds.CategoryCode != ""
	return creds, configured
}
