package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/internal/workflow"
	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

const errorBodyReadLimit int64 = 4096

// Client talks to the order API over HTTP. It implements the workflow client
// interfaces so a session can run against a remote backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds an API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

var (
	_ workflow.CatalogClient    = (*Client)(nil)
	_ workflow.PricingClient    = (*Client)(nil)
	_ workflow.OrderClient      = (*Client)(nil)
	_ workflow.GenerationClient = (*Client)(nil)
)

type standardPayload struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
}

type catalogPayload struct {
	BarcodeTypes map[string]standardPayload `json:"barcode_types"`
	Currency     string                     `json:"currency"`
}

// ListStandards fetches the standards catalog.
func (c *Client) ListStandards(ctx context.Context) (map[string]workflow.Standard, error) {
	var payload catalogPayload
	if err := c.getJSON(ctx, "/api/barcode-types", &payload); err != nil {
		return nil, err
	}

	standards := make(map[string]workflow.Standard, len(payload.BarcodeTypes))
	for key, entry := range payload.BarcodeTypes {
		standards[key] = workflow.Standard{
			Key:       key,
			Name:      entry.Name,
			UnitPrice: entry.UnitPrice,
		}
	}
	return standards, nil
}

type taxPayload struct {
	BaseAmount  decimal.Decimal `json:"base_amount"`
	TaxRegime   enums.TaxRegime `json:"tax_regime"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type quotePayload struct {
	BarcodeType string          `json:"barcode_type"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Pricing     taxPayload      `json:"pricing"`
	Currency    string          `json:"currency"`
}

// QuotePrice prices one (type, quantity, state) triple.
func (c *Client) QuotePrice(ctx context.Context, standardKey string, quantity int, buyerState string) (*workflow.Quote, error) {
	query := url.Values{
		"barcode_type": {standardKey},
		"quantity":     {strconv.Itoa(quantity)},
	}
	if strings.TrimSpace(buyerState) != "" {
		query.Set("state", buyerState)
	}

	endpoint := c.baseURL + "/api/calculate-price?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build calculate-price request")
	}

	var payload quotePayload
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}

	return &workflow.Quote{
		BaseAmount:  payload.Pricing.BaseAmount,
		TaxRegime:   payload.Pricing.TaxRegime,
		TaxAmount:   payload.Pricing.TaxAmount,
		TotalAmount: payload.Pricing.TotalAmount,
	}, nil
}

type createOrderRequest struct {
	BarcodeType     string                `json:"barcode_type"`
	Quantity        int                   `json:"quantity"`
	CustomerDetails types.CustomerDetails `json:"customer_details"`
}

type orderPayload struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}

type createOrderPayload struct {
	Order orderPayload `json:"order"`
}

// CreateOrder commits a draft and returns the persisted order snapshot.
func (c *Client) CreateOrder(ctx context.Context, standardKey string, quantity int, details types.CustomerDetails) (*workflow.Order, error) {
	body, err := json.Marshal(createOrderRequest{
		BarcodeType:     standardKey,
		Quantity:        quantity,
		CustomerDetails: details,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal create-order request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/create-order", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build create-order request")
	}
	req.Header.Set("Content-Type", "application/json")

	var payload createOrderPayload
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}

	return &workflow.Order{
		ID:          payload.Order.ID,
		TotalAmount: payload.Order.TotalAmount,
		TaxAmount:   payload.Order.TaxAmount,
		FinalAmount: payload.Order.FinalAmount,
	}, nil
}

// GeneratePackage requests the deliverable zip for an order.
func (c *Client) GeneratePackage(ctx context.Context, orderID string) ([]byte, error) {
	endpoint := c.baseURL + "/api/process-order/" + url.PathEscape(orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build process-order request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute process-order request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read package payload")
	}
	return payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build request")
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apiError(resp)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response envelope")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response payload")
	}
	return nil
}

// apiError maps a non-2xx response back onto the service error codes so
// callers can distinguish validation failures from outages.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		return pkgerrors.New(pkgerrors.Code(envelope.Error.Code), envelope.Error.Message)
	}
	return pkgerrors.New(pkgerrors.CodeDependency,
		fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
}
