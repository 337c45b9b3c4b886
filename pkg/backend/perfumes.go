package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/scentalux/storefront/internal/model"
)

// ListPerfumes fetches the full, admin-visible product list
func (c *Client) ListPerfumes(ctx context.Context) ([]model.Perfume, error) {
	var perfumes []model.Perfume
	if err := c.doJSON(ctx, http.MethodGet, "/perfumes", "", nil, &perfumes); err != nil {
		return nil, err
	}
	return perfumes, nil
}

// CreatePerfume submits a new product; the backend assigns its identifier
func (c *Client) CreatePerfume(ctx context.Context, input *model.PerfumeInput) (*model.Perfume, error) {
	var created model.Perfume
	if err := c.doJSON(ctx, http.MethodPost, "/perfumes", "", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeletePerfume asks the backend to remove a product. The backend refuses
// with a non-2xx status when the product is referenced by existing orders;
// that refusal surfaces as an *APIError for the caller to interpret.
func (c *Client) DeletePerfume(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/perfumes/%d", id), "", nil, nil)
}

// TogglePublish flips the product's visibility flag and returns the updated entity
func (c *Client) TogglePublish(ctx context.Context, id uint) (*model.Perfume, error) {
	var updated model.Perfume
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/perfumes/%d/publish", id), "", nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStock decrements the product's stock by a sold quantity and returns
// the updated entity
func (c *Client) UpdateStock(ctx context.Context, id uint, quantitySold int) (*model.Perfume, error) {
	body := map[string]int{"quantitySold": quantitySold}
	var updated model.Perfume
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/perfumes/%d/stock", id), "", body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
