package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/usecase"
)

type PurchaseHandler struct {
	purchaseUsecase usecase.PurchaseUsecase
}

func NewPurchaseHandler(purchaseUsecase usecase.PurchaseUsecase) *PurchaseHandler {
	return &PurchaseHandler{purchaseUsecase: purchaseUsecase}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/purchases/user/:userID", h.purchasesByUser)
	router.GET("/api/purchases/transaction/:transactionID/count", h.countByTransaction)
}

func (h *PurchaseHandler) purchasesByUser(c *gin.Context) {
	purchases, err := h.purchaseUsecase.GetPurchasesByUserID(c.Param("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

// countByTransaction is the reconciliation check: a completed transaction
// should have exactly one purchase per cart item.
func (h *PurchaseHandler) countByTransaction(c *gin.Context) {
	count, err := h.purchaseUsecase.CountPurchasesByTransactionID(c.Param("transactionID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
