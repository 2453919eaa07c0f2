package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/somaprep/materials-service/internal/config"
	"github.com/somaprep/materials-service/internal/domain"
)

const (
	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	productionBaseURL = "https://api.safaricom.co.ke"

	accountReference = "SomaPrep Materials"
	transactionType  = "CustomerPayBillOnline"
)

// Client submits STK push requests to the Daraja API. Credentials are
// injected at construction and never defaulted.
type Client struct {
	cfg     config.Daraja
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewClient(cfg config.Daraja) (*Client, error) {
	if err := validateCredentials(cfg); err != nil {
		return nil, err
	}

	baseURL := sandboxBaseURL
	if cfg.Environment == "production" {
		baseURL = productionBaseURL
	}

	return &Client{
		cfg:     cfg,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}, nil
}

func validateCredentials(cfg config.Daraja) error {
	fields := map[string]string{
		"consumer_key":    cfg.ConsumerKey,
		"consumer_secret": cfg.ConsumerSecret,
		"short_code":      cfg.ShortCode,
		"passkey":         cfg.Passkey,
	}
	var missing []string
	for name, value := range fields {
		if value == "" || strings.Contains(value, "your_") {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// NormalizePhone converts local formats to the international form the
// gateway accepts: a leading 0 becomes the 254 country prefix, a leading +
// is stripped. Anything else passes through unchanged.
func NormalizePhone(phone string) string {
	switch {
	case strings.HasPrefix(phone, "0"):
		return "254" + phone[1:]
	case strings.HasPrefix(phone, "+"):
		return phone[1:]
	default:
		return phone
	}
}

// timestamp is YYYYMMDDHHMMSS, no separators.
func (c *Client) timestamp() string {
	return c.now().Format("20060102150405")
}

// password is the time-boxed request credential:
// base64(shortcode + passkey + timestamp).
func (c *Client) password(timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(c.cfg.ShortCode + c.cfg.Passkey + timestamp))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type gatewayError struct {
	ErrorMessage string `json:"errorMessage"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/oauth/v1/generate?grant_type=client_credentials", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	response, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayAuth, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %s", domain.ErrGatewayAuth, response.Status)
	}

	var token tokenResponse
	if err := json.Unmarshal(responseBodyBytes, &token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrGatewayAuth)
	}
	return token.AccessToken, nil
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseDescription string `json:"ResponseDescription"`
}

// STKPush asks the provider to prompt the payer's device. The gateway does
// not accept fractional amounts, so the amount is rounded to the nearest
// whole unit.
func (c *Client) STKPush(ctx context.Context, phoneNumber string, amount float64, itemCount int) (*domain.StkPushResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	formattedPhone := NormalizePhone(phoneNumber)
	timestamp := c.timestamp()

	payload := stkPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          c.password(timestamp),
		Timestamp:         timestamp,
		TransactionType:   transactionType,
		Amount:            int64(math.Round(amount)),
		PartyA:            formattedPhone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       formattedPhone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  accountReference,
		TransactionDesc:   fmt.Sprintf("Purchase of %d study material(s)", itemCount),
	}

	requestBodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/mpesa/stkpush/v1/processrequest", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var gwErr gatewayError
		if err := json.Unmarshal(responseBodyBytes, &gwErr); err == nil && gwErr.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRequest, gwErr.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: status %s", domain.ErrGatewayRequest, response.Status)
	}

	var pushResponse stkPushResponse
	if err := json.Unmarshal(responseBodyBytes, &pushResponse); err != nil {
		return nil, err
	}

	return &domain.StkPushResponse{
		MerchantRequestID:   pushResponse.MerchantRequestID,
		CheckoutRequestID:   pushResponse.CheckoutRequestID,
		PhoneNumber:         formattedPhone,
		ResponseDescription: pushResponse.ResponseDescription,
	}, nil
}
