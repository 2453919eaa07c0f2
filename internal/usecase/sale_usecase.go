package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/somaprep/materials-service/internal/domain"
)

type CreateSaleInput struct {
	TransactionID      string
	MpesaReceiptNumber string
	CustomerPhone      string
	Amount             float64
	CartItems          []domain.CartItem
	TransactionDate    time.Time
}

type SaleUsecase interface {
	GetSales(filters domain.SaleFilters) ([]*domain.Sale, error)
	GetSaleByID(id string) (*domain.Sale, error)
	GetSalesByCustomerPhone(phone string) ([]*domain.Sale, error)
	GetSaleStatistics(filters domain.SaleFilters) (*domain.SaleStatistics, error)
	CreateSale(input *CreateSaleInput) (*domain.Sale, error)
	UpdateSaleStatus(id string, status domain.SaleStatus) error
}

type DefaultSaleUsecase struct {
	SaleRepo domain.SaleRepository
}

func NewDefaultSaleUsecase(saleRepo domain.SaleRepository) *DefaultSaleUsecase {
	return &DefaultSaleUsecase{SaleRepo: saleRepo}
}

func (uc *DefaultSaleUsecase) GetSales(filters domain.SaleFilters) ([]*domain.Sale, error) {
	return uc.SaleRepo.GetSales(filters)
}

func (uc *DefaultSaleUsecase) GetSaleByID(id string) (*domain.Sale, error) {
	return uc.SaleRepo.GetSaleByID(id)
}

func (uc *DefaultSaleUsecase) GetSalesByCustomerPhone(phone string) ([]*domain.Sale, error) {
	return uc.SaleRepo.GetSalesByCustomerPhone(phone)
}

func (uc *DefaultSaleUsecase) GetSaleStatistics(filters domain.SaleFilters) (*domain.SaleStatistics, error) {
	return uc.SaleRepo.GetSaleStatistics(filters)
}

// CreateSale records a manual sale, for payments reconciled outside the
// normal callback flow.
func (uc *DefaultSaleUsecase) CreateSale(input *CreateSaleInput) (*domain.Sale, error) {
	if input.CustomerPhone == "" || input.Amount <= 0 || len(input.CartItems) == 0 {
		return nil, domain.ErrValidation
	}

	transactionDate := input.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	sale := &domain.Sale{
		ID:                 uuid.New().String(),
		TransactionID:      input.TransactionID,
		MpesaReceiptNumber: input.MpesaReceiptNumber,
		CustomerPhone:      input.CustomerPhone,
		Amount:             input.Amount,
		CartItems:          input.CartItems,
		TransactionDate:    transactionDate,
		Status:             domain.SaleCompleted,
		CreatedAt:          time.Now(),
	}

	if err := uc.SaleRepo.CreateSale(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (uc *DefaultSaleUsecase) UpdateSaleStatus(id string, status domain.SaleStatus) error {
	switch status {
	case domain.SaleCompleted, domain.SaleRefunded, domain.SaleFlagged:
	default:
		return domain.ErrValidation
	}
	return uc.SaleRepo.UpdateSaleStatus(id, status)
}
