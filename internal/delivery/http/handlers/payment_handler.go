package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/somaprep/materials-service/internal/domain"
	paymentdto "github.com/somaprep/materials-service/internal/usecase/dto/payment"
	"github.com/somaprep/materials-service/internal/usecase/payment"
)

type PaymentHandler struct {
	paymentUsecase payment.PaymentUsecase
	validate       *validator.Validate
	callbackSecret string
}

func NewPaymentHandler(paymentUsecase payment.PaymentUsecase, callbackSecret string) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validate:       validator.New(),
		callbackSecret: callbackSecret,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/mpesa/stkpush", h.initiatePayment)
	router.POST("/api/mpesa/callback", h.handleCallback)
	router.GET("/api/mpesa/transaction/:checkoutRequestID", h.getTransaction)
}

type stkPushRequest struct {
	PhoneNumber string            `json:"phoneNumber" validate:"required"`
	Amount      float64           `json:"amount" validate:"required,gt=0"`
	CartItems   []domain.CartItem `json:"cartItems" validate:"required,min=1"`
	UserID      string            `json:"userId" validate:"required"`
}

type stkPushResponse struct {
	Success           bool   `json:"success"`
	CheckoutRequestID string `json:"checkoutRequestId"`
	MerchantRequestID string `json:"merchantRequestId"`
	Message           string `json:"message"`
}

func (h *PaymentHandler) initiatePayment(c *gin.Context) {
	var req stkPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	out, err := h.paymentUsecase.InitiatePayment(c.Request.Context(), &paymentdto.InitiateInput{
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
		CartItems:   req.CartItems,
		UserID:      req.UserID,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stkPushResponse{
		Success:           true,
		CheckoutRequestID: out.CheckoutRequestID,
		MerchantRequestID: out.MerchantRequestID,
		Message:           "STK push sent. Enter your M-Pesa PIN on your phone.",
	})
}

// handleCallback receives the gateway's webhook. The shared secret in the
// registered callback URL is checked before anything is parsed; requests
// from other origins are rejected outright.
func (h *PaymentHandler) handleCallback(c *gin.Context) {
	if h.callbackSecret != "" && c.Query("secret") != h.callbackSecret {
		slog.Warn("callback rejected: bad secret", "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var envelope paymentdto.StkCallbackEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": 1, "ResultDesc": "invalid payload"})
		return
	}

	err := h.paymentUsecase.HandleCallback(c.Request.Context(), &envelope)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
	case errors.Is(err, domain.ErrMalformedCallback):
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": 1, "ResultDesc": "malformed callback"})
	case errors.Is(err, domain.ErrTransactionNotFound):
		// The webhook can outrun the initiating write; a 404 keeps the
		// gateway redelivering until the pending record is readable.
		c.JSON(http.StatusNotFound, gin.H{"ResultCode": 1, "ResultDesc": "transaction not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ResultCode": 1, "ResultDesc": "processing failed"})
	}
}

type transactionResponse struct {
	CheckoutRequestID  string    `json:"checkoutRequestId"`
	Status             string    `json:"status"`
	Amount             float64   `json:"amount"`
	PhoneNumber        string    `json:"phoneNumber"`
	MpesaReceiptNumber string    `json:"mpesaReceiptNumber,omitempty"`
	FailureReason      string    `json:"failureReason,omitempty"`
	ItemCount          int       `json:"itemCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (h *PaymentHandler) getTransaction(c *gin.Context) {
	checkoutRequestID := c.Param("checkoutRequestID")

	transaction, err := h.paymentUsecase.GetTransactionByCheckoutRequestID(checkoutRequestID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactionResponse{
		CheckoutRequestID:  transaction.CheckoutRequestID,
		Status:             string(transaction.Status),
		Amount:             transaction.Amount,
		PhoneNumber:        transaction.PhoneNumber,
		MpesaReceiptNumber: transaction.MpesaReceiptNumber,
		FailureReason:      transaction.FailureReason,
		ItemCount:          len(transaction.CartItems),
		CreatedAt:          transaction.CreatedAt,
		UpdatedAt:          transaction.UpdatedAt,
	})
}
