package model

import "time"

// Sale is a completed-sale ledger row used by the admin statistics view
type Sale struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PerfumeID     uint      `json:"perfumeId" gorm:"index;not null"`
	PerfumeName   string    `json:"perfumeName" gorm:"type:varchar(255)"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	Total         float64   `json:"total" gorm:"not null"`
	CustomerEmail string    `json:"customerEmail,omitempty" gorm:"type:varchar(100)"`
	CreatedAt     time.Time `json:"date"`
}

// CategoryCount is a per-category bucket in the statistics response
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriceRangeCount is a per-price-range bucket in the statistics response
type PriceRangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Statistics is the admin dashboard summary
type Statistics struct {
	TotalRevenue           float64           `json:"totalRevenue"`
	TotalProducts          int               `json:"totalProducts"`
	PublishedProducts      int               `json:"publishedProducts"`
	LowStockProducts       int               `json:"lowStockProducts"`
	CategoryDistribution   []CategoryCount   `json:"categoryDistribution"`
	PriceRangeDistribution []PriceRangeCount `json:"priceRangeDistribution"`
	RecentSales            []Sale            `json:"recentSales"`
}
