package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/somaprep/materials-service/internal/domain"
	paymentdto "github.com/somaprep/materials-service/internal/usecase/dto/payment"
)

type stubPaymentUsecase struct {
	initiateOut  *paymentdto.InitiateOutput
	initiateErr  error
	callbackErr  error
	callbacks    int
	transaction  *domain.Transaction
	getErr       error
	lastInitiate *paymentdto.InitiateInput
}

func (s *stubPaymentUsecase) InitiatePayment(ctx context.Context, input *paymentdto.InitiateInput) (*paymentdto.InitiateOutput, error) {
	s.lastInitiate = input
	return s.initiateOut, s.initiateErr
}

func (s *stubPaymentUsecase) HandleCallback(ctx context.Context, envelope *paymentdto.StkCallbackEnvelope) error {
	s.callbacks++
	return s.callbackErr
}

func (s *stubPaymentUsecase) GetTransactionByCheckoutRequestID(checkoutRequestID string) (*domain.Transaction, error) {
	return s.transaction, s.getErr
}

func newPaymentRouter(stub *stubPaymentUsecase, callbackSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewPaymentHandler(stub, callbackSecret).RegisterRoutes(router)
	return router
}

func TestInitiateEndpoint_Success(t *testing.T) {
	stub := &stubPaymentUsecase{
		initiateOut: &paymentdto.InitiateOutput{CheckoutRequestID: "ws_CO_1", MerchantRequestID: "merchant-1"},
	}
	router := newPaymentRouter(stub, "")

	body, _ := json.Marshal(map[string]interface{}{
		"phoneNumber": "0712345678",
		"amount":      500,
		"userId":      "user-1",
		"cartItems": []map[string]interface{}{
			{"materialId": "mat-1", "title": "KCSE Maths P1", "subject": "Mathematics", "price": 500},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/mpesa/stkpush", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success           bool   `json:"success"`
		CheckoutRequestID string `json:"checkoutRequestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.CheckoutRequestID != "ws_CO_1" {
		t.Errorf("response = %+v", resp)
	}
	if stub.lastInitiate == nil || stub.lastInitiate.PhoneNumber != "0712345678" {
		t.Errorf("usecase received %+v", stub.lastInitiate)
	}
}

func TestInitiateEndpoint_RejectsInvalidBody(t *testing.T) {
	stub := &stubPaymentUsecase{}
	router := newPaymentRouter(stub, "")

	cases := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing phone", `{"amount":500,"userId":"u","cartItems":[{"materialId":"m"}]}`},
		{"empty cart", `{"phoneNumber":"0712345678","amount":500,"userId":"u","cartItems":[]}`},
		{"zero amount", `{"phoneNumber":"0712345678","amount":0,"userId":"u","cartItems":[{"materialId":"m"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/mpesa/stkpush", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
	if stub.lastInitiate != nil {
		t.Errorf("usecase reached on invalid input")
	}
}

func callbackBody() []byte {
	return []byte(`{"Body":{"stkCallback":{"MerchantRequestID":"merchant-1","CheckoutRequestID":"ws_CO_1","ResultCode":0,"ResultDesc":"ok","CallbackMetadata":{"Item":[{"Name":"MpesaReceiptNumber","Value":"ABC123"}]}}}}`)
}

func TestCallbackEndpoint_SecretEnforced(t *testing.T) {
	stub := &stubPaymentUsecase{}
	router := newPaymentRouter(stub, "s3cret")

	t.Run("missing secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/mpesa/callback", bytes.NewReader(callbackBody()))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
		if stub.callbacks != 0 {
			t.Errorf("callback processed despite bad secret")
		}
	})

	t.Run("correct secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/mpesa/callback?secret=s3cret", bytes.NewReader(callbackBody()))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if stub.callbacks != 1 {
			t.Errorf("callback not processed")
		}
	})
}

func TestCallbackEndpoint_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"accepted", nil, http.StatusOK},
		{"malformed", domain.ErrMalformedCallback, http.StatusBadRequest},
		{"unknown reference not found", domain.ErrTransactionNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newPaymentRouter(&stubPaymentUsecase{callbackErr: tc.err}, "")
			req := httptest.NewRequest(http.MethodPost, "/api/mpesa/callback", bytes.NewReader(callbackBody()))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

// A callback can outrun the initiating write. The unknown reference must
// come back as an error status so the gateway redelivers instead of
// dropping the result and stranding the transaction as pending.
func TestCallbackEndpoint_UnknownReferenceNotAcknowledged(t *testing.T) {
	router := newPaymentRouter(&stubPaymentUsecase{callbackErr: domain.ErrTransactionNotFound}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/mpesa/callback", bytes.NewReader(callbackBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp struct {
		ResultCode int `json:"ResultCode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ResultCode == 0 {
		t.Errorf("body = %s, must not acknowledge an unknown reference", rec.Body.String())
	}
}

func TestGetTransactionEndpoint(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		now := time.Now()
		stub := &stubPaymentUsecase{transaction: &domain.Transaction{
			CheckoutRequestID:  "ws_CO_1",
			Status:             domain.StatusCompleted,
			Amount:             500,
			PhoneNumber:        "254712345678",
			MpesaReceiptNumber: "ABC123",
			CartItems:          []domain.CartItem{{MaterialID: "mat-1"}},
			CreatedAt:          now,
			UpdatedAt:          now,
		}}
		router := newPaymentRouter(stub, "")

		req := httptest.NewRequest(http.MethodGet, "/api/mpesa/transaction/ws_CO_1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp struct {
			Status             string `json:"status"`
			MpesaReceiptNumber string `json:"mpesaReceiptNumber"`
			ItemCount          int    `json:"itemCount"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Status != "completed" || resp.MpesaReceiptNumber != "ABC123" || resp.ItemCount != 1 {
			t.Errorf("response = %+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentUsecase{getErr: domain.ErrTransactionNotFound}, "")
		req := httptest.NewRequest(http.MethodGet, "/api/mpesa/transaction/ws_CO_missing", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
