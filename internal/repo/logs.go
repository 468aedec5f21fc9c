package repo

import (
	"context"

	"gorm.io/datatypes"

	"github.com/Skotchmaster/shop_admin/internal/models"
)

func (r *GormRepo) AppendLog(ctx context.Context, adminName, action, targetTable string, targetID uint, details map[string]any) error {
	entry := models.AdminActivityLog{
		AdminName:   adminName,
		Action:      action,
		TargetTable: targetTable,
		TargetID:    targetID,
	}
	if len(details) > 0 {
		entry.Details = datatypes.JSONMap(details)
	}
	return r.DB.WithContext(ctx).Create(&entry).Error
}

// ListLogs returns the newest entries first.
func (r *GormRepo) ListLogs(ctx context.Context) ([]models.AdminActivityLog, error) {
	var items []models.AdminActivityLog
	if err := r.DB.WithContext(ctx).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
