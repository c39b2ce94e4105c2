package payments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tron-wallet/tron_wallet/internal/wallet"
)

// Handler exposes payment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type sendRequest struct {
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Amount      decimal.Decimal `json:"amount"`
	TokenType   string          `json:"token_type"`
}

// Send broadcasts a TRX or USDT-TRC20 transfer from one of the caller's wallets.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	res, err := h.service.Send(c.UserContext(), SendInput{
		OwnerID: uid,
		From:    strings.TrimSpace(req.FromAddress),
		To:      strings.TrimSpace(req.ToAddress),
		Amount:  req.Amount,
		Token:   req.TokenType,
	})
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "Wallet not found or access denied")
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrUnsupportedToken):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrTransactionFailed):
			return fiber.NewError(http.StatusBadRequest, "Transaction failed: "+strings.TrimPrefix(err.Error(), ErrTransactionFailed.Error()+": "))
		default:
			return err
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"transaction_id": res.TransactionID,
		"from":           res.From,
		"to":             res.To,
		"amount":         res.Amount.InexactFloat64(),
		"token":          res.Token,
		"status":         res.Status,
	})
}
