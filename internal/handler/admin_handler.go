package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/catalog"
	"github.com/scentalux/storefront/internal/middleware"
	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

// ListAllPerfumes returns the full product list, hidden entries included
func ListAllPerfumes(c echo.Context) error {
	prometheus.CatalogOperationsCounter.WithLabelValues("admin_list").Inc()
	return c.JSON(http.StatusOK, catalog.GetStore().All())
}

// CreatePerfume registers a new product with the backend
func CreatePerfume(c echo.Context) error {
	log := logger.FromEcho(c)
	sess, _ := middleware.SessionFromContext(c)
	prometheus.CatalogOperationsCounter.WithLabelValues("create").Inc()

	var input model.PerfumeInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if strings.TrimSpace(input.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if strings.TrimSpace(input.Brand) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand is required"})
	}
	if input.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}
	if input.Stock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock must not be negative"})
	}
	if !model.IsValidCategory(input.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	created, err := catalog.GetStore().Create(c.Request().Context(), &input)
	if err != nil {
		return handleBackendError(c, sess, err)
	}

	log.Info("Perfume created by admin",
		zap.Uint("perfume_id", created.ID),
		zap.String("name", created.Name))
	return c.JSON(http.StatusCreated, created)
}

// DeletePerfume asks the backend to remove a product. A delete the backend
// refuses because orders reference the product is a successful response with
// Deleted=false and guidance for the admin, not an error.
func DeletePerfume(c echo.Context) error {
	sess, _ := middleware.SessionFromContext(c)
	prometheus.CatalogOperationsCounter.WithLabelValues("delete").Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid perfume id"})
	}

	result, err := catalog.GetStore().Delete(c.Request().Context(), uint(id))
	if err != nil {
		return handleBackendError(c, sess, err)
	}
	return c.JSON(http.StatusOK, result)
}

// TogglePublish flips a product's customer visibility
func TogglePublish(c echo.Context) error {
	sess, _ := middleware.SessionFromContext(c)
	prometheus.CatalogOperationsCounter.WithLabelValues("toggle_publish").Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid perfume id"})
	}

	updated, err := catalog.GetStore().TogglePublish(c.Request().Context(), uint(id))
	if err != nil {
		return handleBackendError(c, sess, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateStockRequest carries the quantity to subtract from current stock
type UpdateStockRequest struct {
	QuantitySold int `json:"quantitySold"`
}

// UpdateStock decrements a product's stock by a sold quantity
func UpdateStock(c echo.Context) error {
	sess, _ := middleware.SessionFromContext(c)
	prometheus.CatalogOperationsCounter.WithLabelValues("update_stock").Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid perfume id"})
	}

	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.QuantitySold <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantitySold must be positive"})
	}

	updated, err := catalog.GetStore().UpdateStock(c.Request().Context(), uint(id), req.QuantitySold)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "perfume not found"})
		}
		if errors.Is(err, catalog.ErrStockExceeded) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "La cantidad vendida supera el stock disponible.",
			})
		}
		return handleBackendError(c, sess, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// AllOrders returns every order in the system
func AllOrders(c echo.Context) error {
	sess, _ := middleware.SessionFromContext(c)
	prometheus.OrderOperationsCounter.WithLabelValues("admin_list").Inc()

	orders, err := backendClient.AllOrders(c.Request().Context(), sess.Token)
	if err != nil {
		return handleBackendError(c, sess, err)
	}

	logger.FromEcho(c).Info("All orders fetched", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatusRequest carries the target status of a transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order along the fulfillment progression
func UpdateOrderStatus(c echo.Context) error {
	sess, _ := middleware.SessionFromContext(c)
	prometheus.OrderOperationsCounter.WithLabelValues("update_status").Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if !model.IsValidOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown order status"})
	}

	updated, err := backendClient.UpdateOrderStatus(c.Request().Context(), sess.Token, uint(id), req.Status)
	if err != nil {
		return handleBackendError(c, sess, err)
	}

	logger.FromEcho(c).Info("Order status updated",
		zap.Uint64("order_id", id),
		zap.String("status", req.Status))
	return c.JSON(http.StatusOK, updated)
}

// GetStatistics returns the admin dashboard summary
func GetStatistics(c echo.Context) error {
	prometheus.CatalogOperationsCounter.WithLabelValues("statistics").Inc()

	stats, err := catalog.GetStore().Statistics()
	if err != nil {
		logger.FromEcho(c).Error("Failed to compute statistics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}
	return c.JSON(http.StatusOK, stats)
}

// RecordSaleRequest describes a sale entered manually by an admin
type RecordSaleRequest struct {
	PerfumeID     uint    `json:"perfumeId"`
	Quantity      int     `json:"quantity"`
	Total         float64 `json:"total"`
	CustomerEmail string  `json:"customerEmail"`
}

// RecordSale appends a manual sale to the ledger and decrements the
// product's stock
func RecordSale(c echo.Context) error {
	sess, _ := middleware.SessionFromContext(c)
	prometheus.CatalogOperationsCounter.WithLabelValues("record_sale").Inc()

	var req RecordSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	if req.Total < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total must not be negative"})
	}

	err := catalog.GetStore().RecordSale(c.Request().Context(), req.PerfumeID, req.Quantity, req.Total, req.CustomerEmail)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "perfume not found"})
		}
		if errors.Is(err, catalog.ErrStockExceeded) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "La cantidad vendida supera el stock disponible.",
			})
		}
		return handleBackendError(c, sess, err)
	}

	logger.FromEcho(c).Info("Sale recorded",
		zap.Uint("perfume_id", req.PerfumeID),
		zap.Int("quantity", req.Quantity),
		zap.Float64("total", req.Total))
	return c.JSON(http.StatusCreated, echo.Map{"recorded": true})
}
