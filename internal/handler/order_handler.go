package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/cart"
	"github.com/scentalux/storefront/internal/catalog"
	"github.com/scentalux/storefront/internal/middleware"
	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

// CheckoutRequest is the shipping/payment form submitted with the cart
type CheckoutRequest struct {
	PaymentMethod   string `json:"paymentMethod"`
	CustomerName    string `json:"customerName"`
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	PostalCode      string `json:"postalCode"`
	Phone           string `json:"phone"`
}

func (r *CheckoutRequest) validate() string {
	if strings.TrimSpace(r.CustomerName) == "" {
		return "customerName is required"
	}
	if strings.TrimSpace(r.ShippingAddress) == "" {
		return "shippingAddress is required"
	}
	if strings.TrimSpace(r.City) == "" {
		return "city is required"
	}
	if strings.TrimSpace(r.PostalCode) == "" {
		return "postalCode is required"
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return "paymentMethod is required"
	}
	return ""
}

// Checkout builds an order from the caller's cart and the shipping form,
// submits it to the backend under the session's bearer token and clears the
// cart on success. Totals are always derived: taxes are the fixed surcharge
// on the subtotal.
func Checkout(c echo.Context) error {
	log := logger.FromEcho(c)
	sess, errResp := cartAllowed(c)
	if sess == nil {
		return errResp
	}
	prometheus.OrderOperationsCounter.WithLabelValues("checkout").Inc()

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	items, err := cart.GetStore().Items(sess.Username)
	if err != nil {
		log.Error("Failed to load cart for checkout", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "El carrito está vacío."})
	}

	order := &model.CreateOrder{
		PaymentMethod:   req.PaymentMethod,
		CustomerName:    req.CustomerName,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		PostalCode:      req.PostalCode,
		Phone:           req.Phone,
	}
	for _, item := range items {
		perfume, ok := catalog.GetStore().Get(item.PerfumeID)
		if !ok {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Un producto de tu carrito ya no está disponible.",
			})
		}
		if item.Quantity > perfume.Stock {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Stock insuficiente para " + perfume.Name + ".",
			})
		}
		order.Items = append(order.Items, model.CreateOrderItem{
			PerfumeID: item.PerfumeID,
			Quantity:  item.Quantity,
		})
	}

	created, err := backendClient.CreateOrder(c.Request().Context(), sess.Token, order)
	if err != nil {
		return handleBackendError(c, sess, err)
	}

	// the backend decremented stock as part of order creation; feed the
	// sale ledger and re-read server truth instead of recomputing locally
	if err := catalog.GetStore().LogCheckout(created, sess.Username); err != nil {
		log.Error("Failed to log checkout sales", zap.Error(err))
	}
	if err := catalog.GetStore().Refresh(c.Request().Context()); err != nil {
		log.Warn("Catalog refresh after checkout failed", zap.Error(err))
	}
	if err := cart.GetStore().Clear(sess.Username); err != nil {
		log.Error("Failed to clear cart after checkout", zap.Error(err))
	}

	log.Info("Order created",
		zap.Uint("order_id", created.ID),
		zap.String("order_number", created.OrderNumber),
		zap.Float64("total", created.Total))
	return c.JSON(http.StatusCreated, created)
}

// MyOrders returns the caller's order history
func MyOrders(c echo.Context) error {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session", "redirect": "/login"})
	}
	prometheus.OrderOperationsCounter.WithLabelValues("history").Inc()

	orders, err := backendClient.MyOrders(c.Request().Context(), sess.Token)
	if err != nil {
		return handleBackendError(c, sess, err)
	}

	logger.FromEcho(c).Info("Order history fetched",
		zap.String("username", sess.Username),
		zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// AttachReceiptRequest carries the uploaded receipt's URL
type AttachReceiptRequest struct {
	ReceiptImageURL string `json:"receiptImageUrl"`
}

// AttachReceipt records a payment-receipt image against one of the caller's
// orders, putting it in line for admin review
func AttachReceipt(c echo.Context) error {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session", "redirect": "/login"})
	}
	prometheus.OrderOperationsCounter.WithLabelValues("receipt").Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	var req AttachReceiptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if strings.TrimSpace(req.ReceiptImageURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "receiptImageUrl is required"})
	}

	updated, err := backendClient.AttachReceipt(c.Request().Context(), sess.Token, uint(id), req.ReceiptImageURL)
	if err != nil {
		return handleBackendError(c, sess, err)
	}

	logger.FromEcho(c).Info("Receipt attached", zap.Uint64("order_id", id))
	return c.JSON(http.StatusOK, updated)
}
