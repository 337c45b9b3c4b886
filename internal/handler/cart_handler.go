package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/cart"
	"github.com/scentalux/storefront/internal/catalog"
	"github.com/scentalux/storefront/internal/middleware"
	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

// CartLine is a cart row enriched with the product snapshot customers see
type CartLine struct {
	PerfumeID uint    `json:"perfumeId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	ImageURL  string  `json:"imageUrl"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
	LineTotal float64 `json:"lineTotal"`
}

// CartResponse is the cart with its derived totals preview
type CartResponse struct {
	Items    []CartLine `json:"items"`
	Count    int        `json:"count"`
	Subtotal float64    `json:"subtotal"`
	Taxes    float64    `json:"taxes"`
	Total    float64    `json:"total"`
}

// AddCartItemRequest adds a quantity of one product
type AddCartItemRequest struct {
	PerfumeID uint `json:"perfumeId"`
	Quantity  int  `json:"quantity"`
}

// SetCartItemRequest sets a line's explicit quantity
type SetCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// cartAllowed rejects admin identities; administrators cannot shop
func cartAllowed(c echo.Context) (*model.Session, error) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session", "redirect": "/login"})
	}
	if sess.IsAdmin() {
		return nil, c.JSON(http.StatusForbidden, echo.Map{
			"error": "Los administradores no pueden añadir artículos al carrito.",
		})
	}
	return sess, nil
}

// GetCart returns the caller's cart with a derived totals preview
func GetCart(c echo.Context) error {
	sess, errResp := cartAllowed(c)
	if sess == nil {
		return errResp
	}

	response, err := buildCartResponse(sess.Username)
	if err != nil {
		logger.FromEcho(c).Error("Failed to load cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	return c.JSON(http.StatusOK, response)
}

// AddCartItem merges a quantity into the caller's cart, stock permitting
func AddCartItem(c echo.Context) error {
	log := logger.FromEcho(c)
	sess, errResp := cartAllowed(c)
	if sess == nil {
		return errResp
	}
	prometheus.CartOperationsCounter.WithLabelValues("add").Inc()

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.PerfumeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "perfumeId is required"})
	}

	if err := cart.GetStore().Add(sess.Username, req.PerfumeID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrUnknownPerfume):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "perfume not found"})
		case errors.Is(err, cart.ErrInsufficientStock):
			perfume, _ := catalog.GetStore().Get(req.PerfumeID)
			return c.JSON(http.StatusConflict, echo.Map{
				"error": fmt.Sprintf("Solo puedes añadir hasta %d unidades de %s.", perfume.Stock, perfume.Name),
			})
		default:
			log.Error("Failed to add cart item", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cart"})
		}
	}

	response, err := buildCartResponse(sess.Username)
	if err != nil {
		log.Error("Failed to load cart after add", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	return c.JSON(http.StatusOK, response)
}

// SetCartItem sets a line's quantity. Zero removes the line; requests above
// stock are corrected down to the ceiling.
func SetCartItem(c echo.Context) error {
	log := logger.FromEcho(c)
	sess, errResp := cartAllowed(c)
	if sess == nil {
		return errResp
	}
	prometheus.CartOperationsCounter.WithLabelValues("set").Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid perfume id"})
	}

	var req SetCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := cart.GetStore().SetQuantity(sess.Username, uint(id), req.Quantity); err != nil {
		if errors.Is(err, cart.ErrUnknownPerfume) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "perfume not found"})
		}
		log.Error("Failed to set cart quantity", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cart"})
	}

	response, err := buildCartResponse(sess.Username)
	if err != nil {
		log.Error("Failed to load cart after set", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	return c.JSON(http.StatusOK, response)
}

// RemoveCartItem drops a line from the caller's cart
func RemoveCartItem(c echo.Context) error {
	sess, errResp := cartAllowed(c)
	if sess == nil {
		return errResp
	}
	prometheus.CartOperationsCounter.WithLabelValues("remove").Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid perfume id"})
	}

	if err := cart.GetStore().Remove(sess.Username, uint(id)); err != nil {
		logger.FromEcho(c).Error("Failed to remove cart item", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cart"})
	}

	response, err := buildCartResponse(sess.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	return c.JSON(http.StatusOK, response)
}

// ClearCart empties the caller's cart
func ClearCart(c echo.Context) error {
	sess, errResp := cartAllowed(c)
	if sess == nil {
		return errResp
	}
	prometheus.CartOperationsCounter.WithLabelValues("clear").Inc()

	if err := cart.GetStore().Clear(sess.Username); err != nil {
		logger.FromEcho(c).Error("Failed to clear cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}

// buildCartResponse enriches cart rows with product snapshots and derives
// the totals preview. Lines above current stock are corrected down on the
// way out; lines whose product disappeared are dropped.
func buildCartResponse(username string) (*CartResponse, error) {
	items, err := cart.GetStore().Items(username)
	if err != nil {
		return nil, err
	}

	response := &CartResponse{Items: []CartLine{}}
	for _, item := range items {
		perfume, ok := catalog.GetStore().Get(item.PerfumeID)
		if !ok {
			continue
		}

		quantity := item.Quantity
		if quantity > perfume.Stock {
			quantity = perfume.Stock
			if err := cart.GetStore().SetQuantity(username, item.PerfumeID, quantity); err != nil {
				return nil, err
			}
			if quantity == 0 {
				continue
			}
		}

		response.Items = append(response.Items, CartLine{
			PerfumeID: perfume.ID,
			Name:      perfume.Name,
			Brand:     perfume.Brand,
			ImageURL:  perfume.ImageURL,
			UnitPrice: perfume.Price,
			Quantity:  quantity,
			Stock:     perfume.Stock,
			LineTotal: perfume.Price * float64(quantity),
		})
		response.Count += quantity
		response.Subtotal += perfume.Price * float64(quantity)
	}

	response.Taxes, response.Total = model.OrderTotals(response.Subtotal)
	return response, nil
}
