package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/usecase"
)

type SaleHandler struct {
	saleUsecase usecase.SaleUsecase
	validate    *validator.Validate
}

func NewSaleHandler(saleUsecase usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{
		saleUsecase: saleUsecase,
		validate:    validator.New(),
	}
}

func (h *SaleHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/sales", h.listSales)
	router.GET("/api/sales/stats", h.saleStatistics)
	router.GET("/api/sales/customer/:phone", h.salesByCustomer)
	router.GET("/api/sales/:id", h.getSale)
	router.POST("/api/sales", h.createSale)
	router.PATCH("/api/sales/:id/status", h.updateSaleStatus)
}

// saleFilters reads the optional from/to query bounds as RFC 3339 dates.
func saleFilters(c *gin.Context) (domain.SaleFilters, error) {
	var filters domain.SaleFilters
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.DateFrom = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.DateTo = t
	}
	return filters, nil
}

func (h *SaleHandler) listSales(c *gin.Context) {
	filters, err := saleFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from/to must be RFC 3339 timestamps"})
		return
	}

	sales, err := h.saleUsecase.GetSales(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

func (h *SaleHandler) saleStatistics(c *gin.Context) {
	filters, err := saleFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from/to must be RFC 3339 timestamps"})
		return
	}

	stats, err := h.saleUsecase.GetSaleStatistics(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *SaleHandler) salesByCustomer(c *gin.Context) {
	sales, err := h.saleUsecase.GetSalesByCustomerPhone(c.Param("phone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

func (h *SaleHandler) getSale(c *gin.Context) {
	sale, err := h.saleUsecase.GetSaleByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sale)
}

type createSaleRequest struct {
	TransactionID      string            `json:"transactionId"`
	MpesaReceiptNumber string            `json:"mpesaReceiptNumber"`
	CustomerPhone      string            `json:"customerPhone" validate:"required"`
	Amount             float64           `json:"amount" validate:"required,gt=0"`
	CartItems          []domain.CartItem `json:"cartItems" validate:"required,min=1"`
	TransactionDate    time.Time         `json:"transactionDate"`
}

func (h *SaleHandler) createSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.saleUsecase.CreateSale(&usecase.CreateSaleInput{
		TransactionID:      req.TransactionID,
		MpesaReceiptNumber: req.MpesaReceiptNumber,
		CustomerPhone:      req.CustomerPhone,
		Amount:             req.Amount,
		CartItems:          req.CartItems,
		TransactionDate:    req.TransactionDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sale)
}

type updateSaleStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *SaleHandler) updateSaleStatus(c *gin.Context) {
	var req updateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.saleUsecase.UpdateSaleStatus(c.Param("id"), domain.SaleStatus(req.Status))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"updated": true})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sale status"})
	case errors.Is(err, domain.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
