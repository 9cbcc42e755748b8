package repo

import (
	"context"

	"github.com/Beka01247/restaurant-client/internal/domain"
)

type TableOccupancyAuditRepository interface {
	Create(ctx context.Context, audit *domain.TableOccupancyAudit) error
	GetByTableNumber(ctx context.Context, number int, limit int) ([]domain.TableOccupancyAudit, error)
}
