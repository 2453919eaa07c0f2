package repository

import (
	"errors"
	"fmt"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/mappers"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultSaleRepository struct {
	DB *gorm.DB
}

func NewDefaultSaleRepository(db *gorm.DB) *DefaultSaleRepository {
	return &DefaultSaleRepository{DB: db}
}

func (r *DefaultSaleRepository) CreateSale(sale *domain.Sale) error {
	if err := r.DB.Create(mappers.ToGORMSale(sale)).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *DefaultSaleRepository) GetSaleByID(id string) (*domain.Sale, error) {
	var saleModel models.SaleModel
	if err := r.DB.First(&saleModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSale(&saleModel), nil
}

func (r *DefaultSaleRepository) GetSales(filters domain.SaleFilters) ([]*domain.Sale, error) {
	baseQuery := r.DB.Model(&models.SaleModel{})

	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}

	var saleModels []models.SaleModel
	if err := baseQuery.Order("created_at DESC").Find(&saleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find sales: %w", err)
	}

	sales := make([]*domain.Sale, len(saleModels))
	for i, saleModel := range saleModels {
		sales[i] = mappers.ToDomainSale(&saleModel)
	}
	return sales, nil
}

func (r *DefaultSaleRepository) GetSalesByCustomerPhone(phone string) ([]*domain.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.DB.Where("customer_phone = ?", phone).Order("created_at DESC").Find(&saleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find sales by phone: %w", err)
	}

	sales := make([]*domain.Sale, len(saleModels))
	for i, saleModel := range saleModels {
		sales[i] = mappers.ToDomainSale(&saleModel)
	}
	return sales, nil
}

func (r *DefaultSaleRepository) UpdateSaleStatus(id string, status domain.SaleStatus) error {
	res := r.DB.Model(&models.SaleModel{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// GetSaleStatistics aggregates in memory: the cart snapshot is jsonb and the
// by-subject breakdown needs the line items anyway.
func (r *DefaultSaleRepository) GetSaleStatistics(filters domain.SaleFilters) (*domain.SaleStatistics, error) {
	sales, err := r.GetSales(filters)
	if err != nil {
		return nil, err
	}

	stats := &domain.SaleStatistics{
		BySubject: make(map[string]float64),
	}
	for _, sale := range sales {
		stats.TotalSales++
		stats.TotalRevenue += sale.Amount
		stats.ItemsSold += int64(len(sale.CartItems))
		for _, item := range sale.CartItems {
			stats.BySubject[item.Subject] += item.Price
		}
	}
	return stats, nil
}
