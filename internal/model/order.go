package model

import "math"

// Order status progression as the backend defines it
const (
	StatusPendiente  = "PENDIENTE"
	StatusConfirmado = "CONFIRMADO"
	StatusProcesando = "PROCESANDO"
	StatusEnCamino   = "EN_CAMINO"
	StatusEntregado  = "ENTREGADO"
	StatusCancelado  = "CANCELADO"
)

// TaxRate is the fixed surcharge applied on the order subtotal
const TaxRate = 0.08

var orderStatuses = map[string]bool{
	StatusPendiente:  true,
	StatusConfirmado: true,
	StatusProcesando: true,
	StatusEnCamino:   true,
	StatusEntregado:  true,
	StatusCancelado:  true,
}

// IsValidOrderStatus reports whether the value belongs to the fixed progression
func IsValidOrderStatus(status string) bool {
	return orderStatuses[status]
}

// OrderItem is a snapshot of a product line at order time
type OrderItem struct {
	PerfumeID   uint    `json:"perfumeId"`
	PerfumeName string  `json:"perfumeName"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"imageUrl"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Order is the backend's order representation
type Order struct {
	ID              uint        `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	CustomerName    string      `json:"customerName"`
	OrderDate       string      `json:"orderDate"`
	Subtotal        float64     `json:"subtotal"`
	Taxes           float64     `json:"taxes"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	ReceiptImageURL string      `json:"receiptImageUrl,omitempty"`
	ShippingAddress string      `json:"shippingAddress"`
	City            string      `json:"city"`
	PostalCode      string      `json:"postalCode"`
	Items           []OrderItem `json:"items"`
}

// CreateOrderItem is a cart line as submitted to the backend
type CreateOrderItem struct {
	PerfumeID uint `json:"perfumeId"`
	Quantity  int  `json:"quantity"`
}

// CreateOrder is the order-creation payload
type CreateOrder struct {
	Items           []CreateOrderItem `json:"items"`
	PaymentMethod   string            `json:"paymentMethod"`
	CustomerName    string            `json:"customerName"`
	ShippingAddress string            `json:"shippingAddress"`
	City            string            `json:"city"`
	PostalCode      string            `json:"postalCode"`
	Phone           string            `json:"phone,omitempty"`
}

// OrderTotals derives taxes and total from a subtotal. These are always
// computed, never stored independently.
func OrderTotals(subtotal float64) (taxes, total float64) {
	taxes = roundCents(subtotal * TaxRate)
	total = roundCents(subtotal + taxes)
	return taxes, total
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
