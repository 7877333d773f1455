package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/usecase"
)

const defaultTimeout = 15 * time.Second

// Client implements usecase.GatewayClient against the Paystack REST API.
// Amounts cross the wire in kobo; the rest of the system works in naira.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     zerolog.Logger
}

// NewClient creates a new Paystack client. Every request runs under the
// given timeout, so a hung upstream surfaces as a gateway error instead of
// an open-ended pending state.
func NewClient(baseURL, secretKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		secretKey:  secretKey,
		logger:     logger,
	}
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// nairaToKobo converts a naira amount to the integer kobo the API expects.
func nairaToKobo(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// CreatePaymentLink initializes a hosted checkout session.
func (c *Client) CreatePaymentLink(ctx context.Context, req usecase.PaymentLinkRequest) (*usecase.PaymentLink, error) {
	body := map[string]any{
		"amount":    nairaToKobo(req.Amount),
		"email":     req.Email,
		"currency":  "NGN",
		"reference": req.Reference,
		"metadata":  req.Metadata,
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", nil, body, &data); err != nil {
		return nil, err
	}

	return &usecase.PaymentLink{
		AuthorizationURL: data.AuthorizationURL,
		Reference:        data.Reference,
	}, nil
}

// VerifyTransaction returns the provider-side status of a transaction.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (string, error) {
	var data struct {
		Status string `json:"status"`
	}
	if err := c.call(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, nil, &data); err != nil {
		return "", err
	}

	return data.Status, nil
}

// ListBanks fetches a page of the bank directory.
func (c *Client) ListBanks(ctx context.Context, page, limit int) ([]usecase.Bank, error) {
	params := url.Values{
		"country": {"nigeria"},
		"page":    {strconv.Itoa(page)},
		"perPage": {strconv.Itoa(limit)},
	}

	var data []struct {
		Name string `json:"name"`
		Code string `json:"code"`
		Slug string `json:"slug"`
	}
	if err := c.call(ctx, http.MethodGet, "/bank", params, nil, &data); err != nil {
		return nil, err
	}

	banks := make([]usecase.Bank, 0, len(data))
	for _, b := range data {
		banks = append(banks, usecase.Bank{Name: b.Name, Code: b.Code, Slug: b.Slug})
	}

	return banks, nil
}

// VerifyBankAccount resolves an account number to its registered name.
func (c *Client) VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (*usecase.BankAccount, error) {
	params := url.Values{
		"account_number": {accountNumber},
		"bank_code":      {bankCode},
	}

	var data struct {
		AccountNumber string `json:"account_number"`
		AccountName   string `json:"account_name"`
	}
	if err := c.call(ctx, http.MethodGet, "/bank/resolve", params, nil, &data); err != nil {
		return nil, err
	}

	return &usecase.BankAccount{
		AccountNumber: data.AccountNumber,
		AccountName:   data.AccountName,
		BankCode:      bankCode,
	}, nil
}

// InitiateTransfer registers the recipient and starts the payout. Both
// calls must succeed for the transfer to be considered initiated.
func (c *Client) InitiateTransfer(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferHandle, error) {
	recipientBody := map[string]any{
		"type":           "nuban",
		"name":           req.Account.AccountName,
		"account_number": req.Account.AccountNumber,
		"bank_code":      req.Account.BankCode,
		"currency":       "NGN",
	}

	var recipient struct {
		RecipientCode string `json:"recipient_code"`
	}
	if err := c.call(ctx, http.MethodPost, "/transferrecipient", nil, recipientBody, &recipient); err != nil {
		return nil, err
	}

	transferBody := map[string]any{
		"source":    "balance",
		"amount":    nairaToKobo(req.Amount),
		"reference": req.Reference,
		"recipient": recipient.RecipientCode,
		"reason":    req.Narration,
	}

	var data struct {
		TransferCode string `json:"transfer_code"`
		Reference    string `json:"reference"`
		Status       string `json:"status"`
	}
	if err := c.call(ctx, http.MethodPost, "/transfer", nil, transferBody, &data); err != nil {
		return nil, err
	}

	return &usecase.TransferHandle{
		TransferCode: data.TransferCode,
		Reference:    data.Reference,
		Status:       data.Status,
	}, nil
}

// FinalizeTransfer submits the second factor for an initiated transfer.
func (c *Client) FinalizeTransfer(ctx context.Context, transferCode, otp string) (*usecase.TransferResult, error) {
	body := map[string]any{
		"transfer_code": transferCode,
		"otp":           otp,
	}

	var env apiEnvelope
	if err := c.callEnvelope(ctx, http.MethodPost, "/transfer/finalize_transfer", nil, body, &env); err != nil {
		return nil, err
	}

	var data struct {
		TransferCode string `json:"transfer_code"`
		Status       string `json:"status"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrGateway, err)
		}
	}

	return &usecase.TransferResult{
		TransferCode: data.TransferCode,
		Status:       data.Status,
		Message:      env.Message,
	}, nil
}

func (c *Client) call(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	var env apiEnvelope
	if err := c.callEnvelope(ctx, method, path, params, body, &env); err != nil {
		return err
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", domain.ErrGateway, err)
		}
	}

	return nil
}

func (c *Client) callEnvelope(ctx context.Context, method, path string, params url.Values, body any, env *apiEnvelope) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", domain.ErrGateway, err)
	}

	if err := json.Unmarshal(respBody, env); err != nil {
		return fmt.Errorf("%w: unexpected response from %s %s: status %d", domain.ErrGateway, method, path, resp.StatusCode)
	}

	if resp.StatusCode >= 400 || !env.Status {
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status_code", resp.StatusCode).
			Str("message", env.Message).
			Msg("gateway call failed")

		return fmt.Errorf("%w: %s", domain.ErrGateway, env.Message)
	}

	return nil
}
