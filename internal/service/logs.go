package service

import (
	"context"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
)

type LogService struct {
	Repo *repo.GormRepo
}

func (s *LogService) List(ctx context.Context) ([]models.AdminActivityLog, error) {
	return s.Repo.ListLogs(ctx)
}
