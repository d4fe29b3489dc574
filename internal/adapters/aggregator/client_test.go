package aggregator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/pkg/logger"
)

func setupTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, logger.NewNop())
	return client, server
}

func instructionDTO(programID solana.PublicKey, data []byte, accounts ...solana.PublicKey) InstructionDTO {
	dto := InstructionDTO{
		ProgramID: programID.String(),
		Data:      base64.StdEncoding.EncodeToString(data),
	}
	for _, account := range accounts {
		dto.Accounts = append(dto.Accounts, InstructionAccountDTO{Pubkey: account.String(), IsWritable: true})
	}
	return dto
}

func TestGetSwapTxForExactOut(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	inputMint := solana.NewWallet().PublicKey()
	swapProgram := solana.NewWallet().PublicKey()
	lookupTable := solana.NewWallet().PublicKey()

	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			assert.Equal(t, http.MethodGet, r.Method)
			query := r.URL.Query()
			assert.Equal(t, inputMint.String(), query.Get("inputMint"))
			assert.Equal(t, NativeMint, query.Get("outputMint"))
			assert.Equal(t, "5000000", query.Get("amount"))
			assert.Equal(t, "ExactOut", query.Get("swapMode"))
			json.NewEncoder(w).Encode(QuoteResponse{
				InputMint:  inputMint.String(),
				OutputMint: NativeMint,
				InAmount:   "712000",
				OutAmount:  "5000000",
				SwapMode:   "ExactOut",
			})
		case "/swap-instructions":
			assert.Equal(t, http.MethodPost, r.Method)
			var body swapInstructionsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, user.String(), body.UserPublicKey)
			assert.Equal(t, "712000", body.QuoteResponse.InAmount)
			assert.True(t, body.WrapAndUnwrapSol)

			setup := instructionDTO(solana.SystemProgramID, []byte{1}, user)
			swap := instructionDTO(swapProgram, []byte{2, 3, 4}, user, inputMint)
			cleanup := instructionDTO(solana.TokenProgramID, []byte{5}, user)
			json.NewEncoder(w).Encode(SwapInstructionsResponse{
				SetupInstructions:           []InstructionDTO{setup},
				SwapInstruction:             &swap,
				CleanupInstruction:          &cleanup,
				AddressLookupTableAddresses: []string{lookupTable.String()},
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	fragment, err := client.GetSwapTxForExactOut(context.Background(), user.String(), inputMint.String(), big.NewInt(5000000))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(712000), fragment.AmountIn)

	// Setup, swap, cleanup keep their order.
	require.Len(t, fragment.Instructions, 3)
	assert.Equal(t, solana.SystemProgramID, fragment.Instructions[0].ProgramID())
	assert.Equal(t, swapProgram, fragment.Instructions[1].ProgramID())
	assert.Equal(t, solana.TokenProgramID, fragment.Instructions[2].ProgramID())

	data, err := fragment.Instructions[1].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, data)

	accounts := fragment.Instructions[1].Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, user, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsWritable)

	require.Len(t, fragment.LookupTableAddresses, 1)
	assert.Equal(t, lookupTable, fragment.LookupTableAddresses[0])
}

func TestGetSwapTxForExactOutNoRoute(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QuoteResponse{})
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	user := solana.NewWallet().PublicKey()
	_, err := client.GetSwapTxForExactOut(context.Background(), user.String(), NativeMint, big.NewInt(100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAggregator))
	assert.Contains(t, err.Error(), "no route found")
}

func TestGetSwapTxForExactOutBadInstructionData(t *testing.T) {
	user := solana.NewWallet().PublicKey()

	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			json.NewEncoder(w).Encode(QuoteResponse{InAmount: "100", OutAmount: "50"})
		case "/swap-instructions":
			swap := InstructionDTO{
				ProgramID: solana.TokenProgramID.String(),
				Data:      "not-base64!!",
			}
			json.NewEncoder(w).Encode(SwapInstructionsResponse{SwapInstruction: &swap})
		}
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	_, err := client.GetSwapTxForExactOut(context.Background(), user.String(), NativeMint, big.NewInt(50))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAggregator))
}

func TestQuoteRetriesServerErrors(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	swapProgram := solana.NewWallet().PublicKey()

	var quoteCalls int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			if atomic.AddInt32(&quoteCalls, 1) == 1 {
				http.Error(w, "bad gateway", http.StatusBadGateway)
				return
			}
			json.NewEncoder(w).Encode(QuoteResponse{InAmount: "250", OutAmount: "100"})
		case "/swap-instructions":
			swap := instructionDTO(swapProgram, []byte{1}, user)
			json.NewEncoder(w).Encode(SwapInstructionsResponse{SwapInstruction: &swap})
		}
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	fragment, err := client.GetSwapTxForExactOut(context.Background(), user.String(), NativeMint, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(250), fragment.AmountIn)
	assert.Equal(t, int32(2), atomic.LoadInt32(&quoteCalls))
}

func TestQuoteDoesNotRetryClientErrors(t *testing.T) {
	var quoteCalls int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&quoteCalls, 1)
		http.Error(w, "no route", http.StatusBadRequest)
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	user := solana.NewWallet().PublicKey()
	_, err := client.GetSwapTxForExactOut(context.Background(), user.String(), NativeMint, big.NewInt(100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAggregator))
	assert.Equal(t, int32(1), atomic.LoadInt32(&quoteCalls))
}

func TestGetSwapTxForExactOutServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over capacity", http.StatusServiceUnavailable)
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	user := solana.NewWallet().PublicKey()
	_, err := client.GetSwapTxForExactOut(context.Background(), user.String(), NativeMint, big.NewInt(100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAggregator))
	assert.Contains(t, err.Error(), "status 503")
}
