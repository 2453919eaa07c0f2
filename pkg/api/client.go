package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTransactionNotFound mirrors the service's 404 on an unknown checkout
// request reference.
var ErrTransactionNotFound = errors.New("transaction not found")

// CartItem is the wire form of one purchasable line item.
type CartItem struct {
	MaterialID  string  `json:"materialId"`
	Title       string  `json:"title"`
	Subject     string  `json:"subject"`
	Level       string  `json:"level"`
	Year        string  `json:"year"`
	Price       float64 `json:"price"`
	DownloadKey string  `json:"downloadKey"`
	FileSize    string  `json:"fileSize"`
	Pages       int     `json:"pages"`
}

type StkPushRequest struct {
	PhoneNumber string     `json:"phoneNumber"`
	Amount      float64    `json:"amount"`
	CartItems   []CartItem `json:"cartItems"`
	UserID      string     `json:"userId"`
}

type StkPushResult struct {
	Success           bool   `json:"success"`
	CheckoutRequestID string `json:"checkoutRequestId"`
	MerchantRequestID string `json:"merchantRequestId"`
	Message           string `json:"message"`
}

type Transaction struct {
	CheckoutRequestID  string    `json:"checkoutRequestId"`
	Status             string    `json:"status"`
	Amount             float64   `json:"amount"`
	PhoneNumber        string    `json:"phoneNumber"`
	MpesaReceiptNumber string    `json:"mpesaReceiptNumber"`
	FailureReason      string    `json:"failureReason"`
	ItemCount          int       `json:"itemCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is the HTTP client for the materials payment service.
type Client struct {
	Address string
	HTTP    *http.Client
}

func NewClient(address string) *Client {
	return &Client{
		Address: address,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) InitiateSTKPush(ctx context.Context, request StkPushRequest) (*StkPushResult, error) {
	requestBodyBytes, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/mpesa/stkpush", c.Address), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, decodeError(responseBodyBytes, response.StatusCode)
	}

	var result StkPushResult
	if err := json.Unmarshal(responseBodyBytes, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetTransaction(ctx context.Context, checkoutRequestID string) (*Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/mpesa/transaction/%s", c.Address, checkoutRequestID), nil)
	if err != nil {
		return nil, err
	}

	response, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusNotFound {
		return nil, ErrTransactionNotFound
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, decodeError(responseBodyBytes, response.StatusCode)
	}

	var transaction Transaction
	if err := json.Unmarshal(responseBodyBytes, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func decodeError(body []byte, statusCode int) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errors.New(errResp.Error)
	}
	return fmt.Errorf("unexpected status %d", statusCode)
}
