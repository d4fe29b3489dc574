// Package aggregator provides the client for the external swap aggregator
// used to acquire native currency atomically inside a bridge transaction.
package aggregator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/pkg/retry"
)

const defaultTimeout = 30 * time.Second

// errTransient marks failures worth retrying: network errors and 5xx
// responses. 4xx answers (no route, bad mint) are final.
var errTransient = errors.New("transient aggregator failure")

// NativeMint is the wrapped native currency mint the ExactOut swap targets.
const NativeMint = "So11111111111111111111111111111111111111112"

// Config represents aggregator client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client represents an aggregator API client
type Client struct {
	config     Config
	httpClient *http.Client
	retrier    *retry.Retrier
	logger     *zap.Logger
}

// NewClient creates a new aggregator client
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	policy := retry.Policy{
		MaxRetries:     2,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Jitter:         true,
		RetryableFunc: func(err error) bool {
			return errors.Is(err, errTransient)
		},
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		retrier:    retry.NewRetrier(policy, logger),
		logger:     logger,
	}
}

// GetSwapTxForExactOut quotes inputTokenMint -> native for exactly
// outAmount and builds the swap instructions for userAddress.
func (c *Client) GetSwapTxForExactOut(ctx context.Context, userAddress, inputTokenMint string, outAmount *big.Int) (*SwapFragment, error) {
	quote, err := c.getQuote(ctx, inputTokenMint, outAmount)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrAggregator, err,
			"aggregator quote failed for %s -> native, out amount %v", inputTokenMint, outAmount)
	}

	amountIn, ok := new(big.Int).SetString(quote.InAmount, 10)
	if !ok {
		return nil, domainerrors.New(domainerrors.ErrAggregator,
			"aggregator quote inAmount is not a decimal integer: %q", quote.InAmount)
	}

	instructionsResp, err := c.getSwapInstructions(ctx, userAddress, quote)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrAggregator, err,
			"aggregator swap instructions failed for %s", userAddress)
	}

	fragment := &SwapFragment{AmountIn: amountIn}

	dtos := make([]InstructionDTO, 0, len(instructionsResp.SetupInstructions)+2)
	dtos = append(dtos, instructionsResp.SetupInstructions...)
	if instructionsResp.SwapInstruction != nil {
		dtos = append(dtos, *instructionsResp.SwapInstruction)
	}
	if instructionsResp.CleanupInstruction != nil {
		dtos = append(dtos, *instructionsResp.CleanupInstruction)
	}
	for _, dto := range dtos {
		instruction, err := mapInstructionDTO(dto)
		if err != nil {
			return nil, domainerrors.Wrap(domainerrors.ErrAggregator, err, "decode aggregator instruction")
		}
		fragment.Instructions = append(fragment.Instructions, instruction)
	}

	for _, address := range instructionsResp.AddressLookupTableAddresses {
		key, err := solana.PublicKeyFromBase58(address)
		if err != nil {
			return nil, domainerrors.Wrap(domainerrors.ErrAggregator, err,
				"aggregator lookup table address %q is invalid", address)
		}
		fragment.LookupTableAddresses = append(fragment.LookupTableAddresses, key)
	}

	c.logger.Info("Built aggregator swap fragment",
		zap.String("input_mint", inputTokenMint),
		zap.String("amount_in", amountIn.String()),
		zap.String("amount_out", outAmount.String()),
		zap.Int("instructions", len(fragment.Instructions)))
	return fragment, nil
}

func (c *Client) getQuote(ctx context.Context, inputTokenMint string, outAmount *big.Int) (*QuoteResponse, error) {
	params := url.Values{}
	params.Set("inputMint", inputTokenMint)
	params.Set("outputMint", NativeMint)
	params.Set("amount", outAmount.String())
	params.Set("swapMode", "ExactOut")

	// the quote is idempotent, so transient failures are retried
	var quote QuoteResponse
	if err := c.retrier.Do(ctx, func() error {
		return c.doRequest(ctx, http.MethodGet, "/quote?"+params.Encode(), nil, &quote)
	}); err != nil {
		return nil, err
	}
	if quote.InAmount == "" {
		return nil, fmt.Errorf("no route found")
	}
	return &quote, nil
}

func (c *Client) getSwapInstructions(ctx context.Context, userAddress string, quote *QuoteResponse) (*SwapInstructionsResponse, error) {
	body := swapInstructionsRequest{
		UserPublicKey:    userAddress,
		QuoteResponse:    *quote,
		WrapAndUnwrapSol: true,
	}
	var resp SwapInstructionsResponse
	if err := c.doRequest(ctx, http.MethodPost, "/swap-instructions", body, &resp); err != nil {
		return nil, err
	}
	if resp.SwapInstruction == nil {
		return nil, fmt.Errorf("response has no swap instruction")
	}
	return &resp, nil
}

func mapInstructionDTO(dto InstructionDTO) (solana.Instruction, error) {
	programID, err := solana.PublicKeyFromBase58(dto.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("program id %q: %w", dto.ProgramID, err)
	}
	accounts := make(solana.AccountMetaSlice, 0, len(dto.Accounts))
	for _, account := range dto.Accounts {
		pubkey, err := solana.PublicKeyFromBase58(account.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", account.Pubkey, err)
		}
		accounts = append(accounts, &solana.AccountMeta{
			PublicKey:  pubkey,
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		})
	}
	data, err := base64.StdEncoding.DecodeString(dto.Data)
	if err != nil {
		return nil, fmt.Errorf("instruction data: %w", err)
	}
	return solana.NewInstruction(programID, accounts, data), nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	fullURL := c.config.BaseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d, body: %s", errTransient, resp.StatusCode, string(respBody))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	if response != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, response); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
