package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/scentalux/storefront/internal/model"
)

// CreateOrder submits a new order under the caller's bearer token
func (c *Client) CreateOrder(ctx context.Context, token string, order *model.CreateOrder) (*model.Order, error) {
	var created model.Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders", token, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MyOrders fetches the order history of the authenticated customer
func (c *Client) MyOrders(ctx context.Context, token string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/my-orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders fetches every order; the backend restricts it to admin tokens
func (c *Client) AllOrders(ctx context.Context, token string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AttachReceipt records a payment-receipt image URL against an order
func (c *Client) AttachReceipt(ctx context.Context, token string, orderID uint, imageURL string) (*model.Order, error) {
	body := map[string]string{"receiptImageUrl": imageURL}
	var updated model.Order
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/receipt", orderID), token, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateOrderStatus applies an admin status transition
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID uint, status string) (*model.Order, error) {
	body := map[string]string{"status": status}
	var updated model.Order
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", orderID), token, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UploadImage uploads a product image and returns its absolute URL
func (c *Client) UploadImage(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	return c.uploadMultipart(ctx, "/api/upload/image", token, filename, file)
}

// UploadReceipt uploads a payment-receipt image and returns its absolute URL
func (c *Client) UploadReceipt(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	return c.uploadMultipart(ctx, "/api/upload/receipt", token, filename, file)
}
