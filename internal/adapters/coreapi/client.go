// Package coreapi provides the HTTP client for the bridge catalog and cost
// oracle. The catalog maps tokens to chains and pools; the oracle quotes
// relayer fees and native token prices.
package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

const (
	defaultTimeout       = 30 * time.Second
	maxRetries           = 3
	maxRequestsPerSecond = 20
)

// Config represents core API client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client represents a core API client
type Client struct {
	config         Config
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker
	rateLimiter    *rate.Limiter
	logger         *zap.Logger
}

// NewClient creates a new core API client
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	cbSettings := gobreaker.Settings{
		Name:        "CoreAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Core API circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		config:         config,
		httpClient:     &http.Client{Timeout: config.Timeout},
		circuitBreaker: gobreaker.NewCircuitBreaker(cbSettings),
		rateLimiter:    rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1),
		logger:         logger,
	}
}

// GetChainDetailsMap fetches the chain/token catalog
func (c *Client) GetChainDetailsMap(ctx context.Context) (map[entities.ChainSymbol]ChainDetails, error) {
	var resp ChainDetailsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/token-info", nil, &resp); err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err, "get chain details failed")
	}
	return mapChainDetailsResponse(resp), nil
}

// GetPoolInfo fetches a fresh pool state snapshot for one pool
func (c *Client) GetPoolInfo(ctx context.Context, chainSymbol entities.ChainSymbol, poolAddress string) (entities.PoolInfo, error) {
	body := map[string][]map[string]string{
		"pools": {{"chainSymbol": string(chainSymbol), "poolAddress": poolAddress}},
	}
	var resp PoolResponse
	if err := c.doRequest(ctx, http.MethodPost, "/pool-info", body, &resp); err != nil {
		return entities.PoolInfo{}, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"get pool info failed for %s", PoolKey(chainSymbol, poolAddress))
	}
	dto, ok := resp[string(chainSymbol)][poolAddress]
	if !ok {
		return entities.PoolInfo{}, domainerrors.New(domainerrors.ErrExternalDependency,
			"pool %s missing from pool-info response", PoolKey(chainSymbol, poolAddress))
	}
	return mapPoolDTO(dto)
}

// GetReceiveTransactionCost quotes the relayer fee for a chain pair
func (c *Client) GetReceiveTransactionCost(ctx context.Context, req ReceiveTransactionCostRequest) (*ReceiveTransactionCostResponse, error) {
	var resp ReceiveTransactionCostResponse
	if err := c.doRequest(ctx, http.MethodPost, "/receive-fee", req, &resp); err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"get receive transaction cost failed (source %d, destination %d, messenger %s)",
			req.SourceChainID, req.DestinationChainID, req.Messenger)
	}
	return &resp, nil
}

// GetGasPriceSuggestion returns a suggested priority fee, nil when the
// oracle has none for this chain
func (c *Client) GetGasPriceSuggestion(ctx context.Context, chainSymbol entities.ChainSymbol) (*big.Int, error) {
	endpoint := fmt.Sprintf("/gas-price/%s", chainSymbol)
	var resp GasPriceSuggestionResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"get gas price suggestion failed for %s", chainSymbol)
	}
	if resp.MaxPriorityFeePerGas == "" {
		return nil, nil
	}
	fee, ok := new(big.Int).SetString(resp.MaxPriorityFeePerGas, 10)
	if !ok {
		return nil, domainerrors.New(domainerrors.ErrExternalDependency,
			"gas price suggestion is not a decimal integer: %q", resp.MaxPriorityFeePerGas)
	}
	return fee, nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, c.doRequestInternal(ctx, method, endpoint, body, response)
	})
	return err
}

func (c *Client) doRequestInternal(ctx context.Context, method, endpoint string, body, response interface{}) error {
	fullURL := c.config.BaseURL + endpoint

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read body: %w", err)
			continue
		}

		// Retry on 5xx
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode >= 400 {
			var errResp ErrorResponse
			if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
				errResp.StatusCode = resp.StatusCode
				return &errResp
			}
			return fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(respBody))
		}

		if response != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, response); err != nil {
				return fmt.Errorf("unmarshal response: %w", err)
			}
		}
		return nil
	}
	return lastErr
}
