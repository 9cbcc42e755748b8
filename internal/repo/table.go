package repo

import (
	"context"

	"github.com/Beka01247/restaurant-client/internal/domain"
)

// TableRepository is the remote table ("meja") API. Tables are addressed by number.
type TableRepository interface {
	List(ctx context.Context) ([]domain.Table, error)
	Assign(ctx context.Context, number int, username string) error
	CompleteOrder(ctx context.Context, number int) error
	Create(ctx context.Context, number int) error
	Update(ctx context.Context, number, newNumber int) error
	Delete(ctx context.Context, number int) error
}
