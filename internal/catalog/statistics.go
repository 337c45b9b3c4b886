package catalog

import (
	"context"

	"github.com/scentalux/storefront/internal/model"
)

// lowStockThreshold marks products that the admin dashboard flags as low
const lowStockThreshold = 10

// priceRanges are the dashboard's fixed price buckets
var priceRanges = []struct {
	label string
	min   float64
	max   float64 // exclusive; <0 means unbounded
}{
	{"$0 - $50", 0, 50},
	{"$50 - $100", 50, 100},
	{"$100 - $200", 100, 200},
	{"$200+", 200, -1},
}

// RecordSale decrements the product's stock through the backend and then
// appends the sale to the ledger. The decrement happens first: a sale the
// backend never accepted must not show up in revenue.
func (s *Store) RecordSale(ctx context.Context, perfumeID uint, quantity int, total float64, customerEmail string) error {
	perfume, ok := s.Get(perfumeID)
	if !ok {
		return ErrNotFound
	}
	if quantity > perfume.Stock {
		return ErrStockExceeded
	}

	if _, err := s.UpdateStock(ctx, perfumeID, quantity); err != nil {
		return err
	}

	return s.sales.Record(&model.Sale{
		PerfumeID:     perfumeID,
		PerfumeName:   perfume.Name,
		Quantity:      quantity,
		Total:         total,
		CustomerEmail: customerEmail,
	})
}

// LogCheckout appends one ledger entry per order line. Stock is not touched
// here: the backend already decremented it when it accepted the order.
func (s *Store) LogCheckout(order *model.Order, customerEmail string) error {
	for _, item := range order.Items {
		if err := s.sales.Record(&model.Sale{
			PerfumeID:     item.PerfumeID,
			PerfumeName:   item.PerfumeName,
			Quantity:      item.Quantity,
			Total:         item.TotalPrice,
			CustomerEmail: customerEmail,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Statistics computes the admin dashboard summary over the published subset
// plus the sale ledger
func (s *Store) Statistics() (*model.Statistics, error) {
	all := s.All()
	published := s.Published()

	lowStock := 0
	for _, p := range all {
		if p.Stock < lowStockThreshold {
			lowStock++
		}
	}

	categories := make([]model.CategoryCount, 0, len(model.Categories))
	for _, category := range model.Categories {
		count := 0
		for _, p := range published {
			if p.Category == category {
				count++
			}
		}
		categories = append(categories, model.CategoryCount{Category: category, Count: count})
	}

	ranges := make([]model.PriceRangeCount, 0, len(priceRanges))
	for _, r := range priceRanges {
		count := 0
		for _, p := range published {
			if p.Price >= r.min && (r.max < 0 || p.Price < r.max) {
				count++
			}
		}
		ranges = append(ranges, model.PriceRangeCount{Range: r.label, Count: count})
	}

	revenue, err := s.sales.TotalRevenue()
	if err != nil {
		return nil, err
	}
	recent, err := s.sales.Recent(5)
	if err != nil {
		return nil, err
	}

	return &model.Statistics{
		TotalRevenue:           revenue,
		TotalProducts:          len(all),
		PublishedProducts:      len(published),
		LowStockProducts:       lowStock,
		CategoryDistribution:   categories,
		PriceRangeDistribution: ranges,
		RecentSales:            recent,
	}, nil
}
