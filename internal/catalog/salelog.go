package catalog

import (
	"github.com/scentalux/storefront/internal/model"
	"gorm.io/gorm"
)

// SaleLog is the completed-sale ledger backing the statistics view
type SaleLog interface {
	Record(sale *model.Sale) error
	Recent(n int) ([]model.Sale, error)
	TotalRevenue() (float64, error)
}

// GormSaleLog persists sales in the service database
type GormSaleLog struct {
	db *gorm.DB
}

// NewGormSaleLog creates a sale log over the given database handle
func NewGormSaleLog(db *gorm.DB) *GormSaleLog {
	return &GormSaleLog{db: db}
}

// Record appends a sale row
func (l *GormSaleLog) Record(sale *model.Sale) error {
	return l.db.Create(sale).Error
}

// Recent returns the n most recent sales, newest first
func (l *GormSaleLog) Recent(n int) ([]model.Sale, error) {
	var sales []model.Sale
	err := l.db.Order("created_at DESC").Limit(n).Find(&sales).Error
	return sales, err
}

// TotalRevenue sums the sale totals
func (l *GormSaleLog) TotalRevenue() (float64, error) {
	var total float64
	err := l.db.Model(&model.Sale{}).Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	return total, err
}
