package repo

import (
	"context"

	"github.com/Beka01247/restaurant-client/internal/domain"
)

type CheckoutArchiveRepository interface {
	Create(ctx context.Context, archive *domain.CheckoutArchive) error
	List(ctx context.Context, limit int) ([]domain.CheckoutArchive, error)
}
