package domain

type SaleRepository interface {
	CreateSale(sale *Sale) error
	GetSaleByID(id string) (*Sale, error)
	GetSales(filters SaleFilters) ([]*Sale, error)
	GetSalesByCustomerPhone(phone string) ([]*Sale, error)
	UpdateSaleStatus(id string, status SaleStatus) error
	GetSaleStatistics(filters SaleFilters) (*SaleStatistics, error)
}
