package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

const ordersPath = "/v1/orders"

// Client mints orders on the payment gateway.
type Client interface {
	CreateOrder(ctx context.Context, req model.GatewayOrderRequest) (*model.GatewayOrder, error)
}

// RestClient implements Client over the gateway REST API.
type RestClient struct {
	http   *resty.Client
	logger *slog.Logger
}

// Options configures RestClient.
type Options struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// NewRestClient creates a gateway client authenticated with the key pair.
func NewRestClient(opts Options, logger *slog.Logger) (*RestClient, error) {
	parsed, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(parsed.String(), "/")).
		SetBasicAuth(opts.KeyID, opts.KeySecret).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &RestClient{http: httpClient, logger: logger}, nil
}

// CreateOrder mints a gateway order. Every failure is a *errors.GatewayError.
func (c *RestClient) CreateOrder(ctx context.Context, req model.GatewayOrderRequest) (*model.GatewayOrder, error) {
	var (
		result  orderResponse
		failure errorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(orderRequest{
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Notes:    req.Notes,
		}).
		SetResult(&result).
		SetError(&failure).
		Post(ordersPath)
	if err != nil {
		return nil, &domainErrors.GatewayError{Description: "gateway unreachable", Err: err}
	}

	if resp.IsError() {
		c.logger.Error("gateway order request failed",
			slog.Int("status", resp.StatusCode()),
			slog.String("code", failure.Error.Code),
			slog.String("receipt", req.Receipt),
		)
		description := failure.Error.Description
		if description == "" {
			description = fmt.Sprintf("unexpected status %d", resp.StatusCode())
		}
		return nil, &domainErrors.GatewayError{Description: description}
	}

	if resp.StatusCode() != http.StatusOK || result.ID == "" {
		return nil, &domainErrors.GatewayError{Description: fmt.Sprintf("malformed order response (status %d)", resp.StatusCode())}
	}

	return &model.GatewayOrder{
		ID:       result.ID,
		Amount:   result.Amount,
		Currency: result.Currency,
		Receipt:  result.Receipt,
		Status:   result.Status,
	}, nil
}
