package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"base-receipts/internal/domain/entity"
	"base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/config"
	"base-receipts/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// BasescanClient queries the Etherscan V2 unified API for Base network data
type BasescanClient struct {
	endpoint   string
	apiKey     string
	chainID    string
	httpClient *http.Client
	logger     *logger.Logger
}

// apiResponse is the envelope every explorer endpoint wraps its payload in
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// NewBasescanClient creates a new explorer client
func NewBasescanClient(cfg *config.ExplorerConfig, logger *logger.Logger) *BasescanClient {
	return &BasescanClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		chainID:  cfg.ChainID,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger.WithComponent("basescan-client"),
	}
}

// GetTransactions fetches the normal transaction list for an address
func (c *BasescanClient) GetTransactions(ctx context.Context, address string, query service.TransactionQuery) ([]*entity.Transaction, error) {
	params := url.Values{}
	params.Set("chainid", c.chainID)
	params.Set("module", "account")
	params.Set("action", "txlist")
	params.Set("address", address)
	params.Set("startblock", strconv.FormatInt(query.StartBlock, 10))
	params.Set("endblock", strconv.FormatInt(query.EndBlock, 10))
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("offset", strconv.Itoa(query.Offset))
	params.Set("sort", query.Sort)
	params.Set("apikey", c.apiKey)

	resp, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	if resp.Status != "1" {
		// The explorer reports an empty history as an error-status response
		if resp.Message == "No transactions found" {
			return []*entity.Transaction{}, nil
		}
		c.logger.Warn("Explorer returned error status",
			zap.String("address", address),
			zap.String("message", resp.Message))
		return nil, fmt.Errorf("explorer error: %s", resp.Message)
	}

	var transactions []*entity.Transaction
	if err := json.Unmarshal(resp.Result, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transaction list: %w", err)
	}

	c.logger.Debug("Fetched transactions",
		zap.String("address", address),
		zap.Int("count", len(transactions)))

	return transactions, nil
}

// GetBalance fetches the current native balance in wei. An error status is
// treated as a zero balance so stats for fresh wallets still render.
func (c *BasescanClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	params := url.Values{}
	params.Set("chainid", c.chainID)
	params.Set("module", "account")
	params.Set("action", "balance")
	params.Set("address", address)
	params.Set("tag", "latest")
	params.Set("apikey", c.apiKey)

	resp, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	if resp.Status != "1" {
		c.logger.Warn("Balance lookup returned error status",
			zap.String("address", address),
			zap.String("message", resp.Message))
		return big.NewInt(0), nil
	}

	var raw string
	if err := json.Unmarshal(resp.Result, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode balance: %w", err)
	}

	balance, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q for address %s", raw, address)
	}

	return balance, nil
}

// call performs a single GET against the explorer and decodes the envelope
func (c *BasescanClient) call(ctx context.Context, params url.Values) (*apiResponse, error) {
	reqURL := c.endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build explorer request: %w", err)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned HTTP %d", httpResp.StatusCode)
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read explorer response: %w", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode explorer response: %w", err)
	}

	return &resp, nil
}
