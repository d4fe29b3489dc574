package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bridgecore-service/bridge_core/internal/adapters/aggregator"
	"github.com/bridgecore-service/bridge_core/internal/adapters/coreapi"
	"github.com/bridgecore-service/bridge_core/internal/adapters/evmrpc"
	"github.com/bridgecore-service/bridge_core/internal/adapters/solanarpc"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/bridge"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/bridge/evm"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/bridge/sol"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/fee"
	"github.com/bridgecore-service/bridge_core/internal/infrastructure/config"
	"github.com/bridgecore-service/bridge_core/internal/infrastructure/metrics"
	"github.com/bridgecore-service/bridge_core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if _, err := buildService(cfg, log); err != nil {
		log.Fatal("Failed to build bridge service", zap.Error(err))
	}
	log.Info("Bridge transaction builder initialized",
		zap.String("environment", cfg.Environment),
		zap.String("core_api", cfg.CoreAPI.BaseURL))

	if !cfg.Metrics.Enabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		log.Info("Metrics server listening", zap.Int("port", cfg.Metrics.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Metrics server shutdown failed", zap.Error(err))
	}
	log.Info("Shutdown complete")
}

// buildService wires the adapters and chain builders into the dispatcher.
func buildService(cfg *config.Config, log *zap.Logger) (*bridge.Service, error) {
	api := coreapi.NewClient(coreapi.Config{
		BaseURL: cfg.CoreAPI.BaseURL,
		Timeout: time.Duration(cfg.CoreAPI.Timeout) * time.Second,
	}, log)

	wormholeProgramID, err := solana.PublicKeyFromBase58(cfg.Solana.WormholeProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid wormhole program id: %w", err)
	}
	lookupTable, err := solana.PublicKeyFromBase58(cfg.Solana.LookupTableAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup table address: %w", err)
	}
	solParams := sol.Params{
		WormholeProgramID:  wormholeProgramID,
		LookupTableAddress: lookupTable,
		Cctp: sol.CctpParams{
			Domains: cfg.Solana.Cctp.Domains,
		},
	}
	if cfg.Solana.Cctp.TransmitterProgramID != "" {
		if solParams.Cctp.TransmitterProgramID, err = solana.PublicKeyFromBase58(cfg.Solana.Cctp.TransmitterProgramID); err != nil {
			return nil, fmt.Errorf("invalid cctp transmitter program id: %w", err)
		}
	}
	if cfg.Solana.Cctp.TokenMessengerMinterID != "" {
		if solParams.Cctp.TokenMessengerMinterID, err = solana.PublicKeyFromBase58(cfg.Solana.Cctp.TokenMessengerMinterID); err != nil {
			return nil, fmt.Errorf("invalid cctp token messenger minter id: %w", err)
		}
	}

	provider := solanarpc.NewClient(cfg.Solana.RPCURL, log)
	swaps := aggregator.NewClient(aggregator.Config{BaseURL: cfg.Solana.AggregatorURL}, log)
	fees := fee.NewResolver(api, log)

	evmProviders := make(map[entities.ChainSymbol]evmrpc.Provider, len(cfg.Evm.RPCURLs))
	for symbol, rpcURL := range cfg.Evm.RPCURLs {
		client, dialErr := evmrpc.NewClient(rpcURL, log)
		if dialErr != nil {
			return nil, fmt.Errorf("dial %s RPC endpoint: %w", symbol, dialErr)
		}
		evmProviders[entities.ChainSymbol(strings.ToUpper(symbol))] = client
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	return bridge.NewService(api, m, log,
		sol.NewService(solParams, provider, swaps, fees, log),
		evm.NewService(api, evmProviders, log),
	), nil
}
