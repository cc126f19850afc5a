package api

import (
	"errors"

	"base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultTxLimit      = 20
	maxTxLimit          = 100
	defaultReceiptLimit = 50
)

// Handler holds the application services behind the HTTP routes
type Handler struct {
	stats        service.WalletStatsService
	transactions service.TransactionService
	receipts     service.ReceiptService
	logger       *logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	stats service.WalletStatsService,
	transactions service.TransactionService,
	receipts service.ReceiptService,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		stats:        stats,
		transactions: transactions,
		receipts:     receipts,
		logger:       logger.WithComponent("http-handler"),
	}
}

// mintRequest is the POST /api/v1/receipts payload
type mintRequest struct {
	WalletAddress string `json:"wallet_address"`
	TxHash        string `json:"tx_hash"`
	Note          string `json:"note"`
}

// Health reports liveness
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetWalletStats serves aggregated statistics for a wallet
func (h *Handler) GetWalletStats(c *fiber.Ctx) error {
	address := c.Params("address")
	if !common.IsHexAddress(address) {
		return badRequest(c, "invalid wallet address")
	}

	stats, err := h.stats.GetWalletStats(c.Context(), address)
	if err != nil {
		h.logger.Error("Failed to get wallet stats",
			zap.String("address", address),
			zap.Error(err))
		return upstreamError(c, "failed to compute wallet stats")
	}

	return c.JSON(stats)
}

// GetWalletTransactions serves recent classified transactions for a wallet
func (h *Handler) GetWalletTransactions(c *fiber.Ctx) error {
	address := c.Params("address")
	if !common.IsHexAddress(address) {
		return badRequest(c, "invalid wallet address")
	}

	limit := c.QueryInt("limit", defaultTxLimit)
	if limit < 1 || limit > maxTxLimit {
		return badRequest(c, "limit must be between 1 and 100")
	}

	transactions, err := h.transactions.GetRecentTransactions(c.Context(), address, limit)
	if err != nil {
		h.logger.Error("Failed to get transactions",
			zap.String("address", address),
			zap.Error(err))
		return upstreamError(c, "failed to fetch transactions")
	}

	return c.JSON(fiber.Map{"transactions": transactions})
}

// GetWalletReceipts serves receipts minted by a wallet
func (h *Handler) GetWalletReceipts(c *fiber.Ctx) error {
	address := c.Params("address")
	if !common.IsHexAddress(address) {
		return badRequest(c, "invalid wallet address")
	}

	limit := c.QueryInt("limit", defaultReceiptLimit)
	if limit < 1 || limit > maxTxLimit {
		return badRequest(c, "limit must be between 1 and 100")
	}

	receipts, err := h.receipts.GetWalletReceipts(c.Context(), address, limit)
	if err != nil {
		h.logger.Error("Failed to get receipts",
			zap.String("address", address),
			zap.Error(err))
		return upstreamError(c, "failed to fetch receipts")
	}

	return c.JSON(fiber.Map{"receipts": receipts})
}

// MintReceipt mints a receipt for an eligible transaction
func (h *Handler) MintReceipt(c *fiber.Ctx) error {
	var req mintRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if !common.IsHexAddress(req.WalletAddress) {
		return badRequest(c, "invalid wallet address")
	}
	if req.TxHash == "" {
		return badRequest(c, "tx_hash is required")
	}

	receipt, err := h.receipts.MintReceipt(c.Context(), req.WalletAddress, req.TxHash, req.Note)
	if err != nil {
		var restricted *service.MintRestrictedError
		switch {
		case errors.As(err, &restricted):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":       restricted.Reason,
				"action_type": string(restricted.ActionType),
			})
		case errors.Is(err, service.ErrTransactionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "transaction not found in recent wallet history",
			})
		default:
			h.logger.Error("Failed to mint receipt",
				zap.String("tx_hash", req.TxHash),
				zap.Error(err))
			return upstreamError(c, "failed to mint receipt")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func upstreamError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": msg})
}
