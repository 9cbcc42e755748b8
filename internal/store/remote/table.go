package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/gateway"
)

type TableRepository struct {
	gw *gateway.Client
}

func NewTableRepository(gw *gateway.Client) *TableRepository {
	return &TableRepository{gw: gw}
}

type tableListResponse struct {
	Meja *[]domain.Table `json:"meja"`
}

type tableRequest struct {
	Number int `json:"nomor"`
}

type assignRequest struct {
	Username string `json:"username"`
}

// List fetches every table. A response without the "meja" collection is a
// decode error rather than an empty list.
func (r *TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	var resp tableListResponse
	if err := r.gw.Do(ctx, http.MethodGet, "/meja/user/read", nil, true, &resp); err != nil {
		return nil, err
	}
	if resp.Meja == nil {
		return nil, fmt.Errorf("table list response has no meja collection")
	}

	tables := *resp.Meja
	if err := domain.ValidateTables(tables); err != nil {
		return nil, fmt.Errorf("invalid table list: %w", err)
	}

	return tables, nil
}

func (r *TableRepository) Assign(ctx context.Context, number int, username string) error {
	path := fmt.Sprintf("/meja/user/set/%d", number)
	return r.gw.Do(ctx, http.MethodPost, path, assignRequest{Username: username}, true, nil)
}

func (r *TableRepository) CompleteOrder(ctx context.Context, number int) error {
	path := fmt.Sprintf("/meja/user/complete_order/%d", number)
	return r.gw.Do(ctx, http.MethodPost, path, nil, true, nil)
}

func (r *TableRepository) Create(ctx context.Context, number int) error {
	return r.gw.Do(ctx, http.MethodPost, "/meja/admin/create", tableRequest{Number: number}, true, nil)
}

func (r *TableRepository) Update(ctx context.Context, number, newNumber int) error {
	path := fmt.Sprintf("/meja/admin/update/%d", number)
	return r.gw.Do(ctx, http.MethodPost, path, tableRequest{Number: newNumber}, true, nil)
}

func (r *TableRepository) Delete(ctx context.Context, number int) error {
	path := fmt.Sprintf("/meja/admin/delete/%d", number)
	return r.gw.Do(ctx, http.MethodDelete, path, nil, true, nil)
}
