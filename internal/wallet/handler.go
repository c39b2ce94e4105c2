package wallet

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultHistoryLimit = 20

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service  *Service
	contacts ContactGenerator
}

// NewHandler builds a wallet HTTP handler. contacts may be nil.
func NewHandler(service *Service, contacts ContactGenerator) *Handler {
	return &Handler{service: service, contacts: contacts}
}

type createRequest struct {
	Name string `json:"name"`
}

type importRequest struct {
	Name       string `json:"name"`
	PrivateKey string `json:"private_key"`
}

type walletResponse struct {
	WalletID   string    `json:"wallet_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	HexAddress string    `json:"hex_address,omitempty"`
	IsUsed     bool      `json:"is_used"`
	CreatedAt  time.Time `json:"created_at"`
}

type createResponse struct {
	walletResponse
	PrivateKey string `json:"private_key"`
	Gmail      string `json:"gmail,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Password   string `json:"password,omitempty"`
}

func toResponse(w Wallet) walletResponse {
	return walletResponse{
		WalletID:   w.ID,
		Name:       w.Name,
		Address:    w.Address,
		HexAddress: w.HexAddress,
		IsUsed:     w.IsUsed,
		CreatedAt:  w.CreatedAt,
	}
}

// Create provisions a wallet for the authenticated owner.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	uid, _ := c.Locals("user_id").(string)

	w, err := h.service.Create(c.UserContext(), uid, req.Name)
	if err != nil {
		return err
	}

	resp := createResponse{walletResponse: toResponse(w), PrivateKey: w.PrivateKey}
	if h.contacts != nil {
		contact := h.contacts.Contact()
		resp.Gmail, resp.Phone, resp.Password = contact.Gmail, contact.Phone, contact.Password
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

// Import stores an existing private key for the authenticated owner.
func (h *Handler) Import(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	w, err := h.service.Import(c.UserContext(), uid, req.Name, req.PrivateKey)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(w))
}

// List returns the caller's wallets.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	wallets, err := h.service.List(c.UserContext(), uid)
	if err != nil {
		return err
	}
	out := make([]walletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toResponse(w))
	}
	return c.JSON(fiber.Map{"wallets": out})
}

// Get returns a single wallet.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	w, err := h.service.Get(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(w))
}

// Delete removes a wallet.
func (h *Handler) Delete(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if err := h.service.Delete(c.UserContext(), uid, c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"message": "Wallet deleted successfully"})
}

// Export returns the wallet's private key.
func (h *Handler) Export(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	w, err := h.service.Export(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"private_key": w.PrivateKey, "address": w.Address})
}

// MarkUsed toggles the used flag from the ?used= query parameter.
func (h *Handler) MarkUsed(c *fiber.Ctx) error {
	used, err := strconv.ParseBool(c.Query("used"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "query parameter 'used' must be a boolean")
	}
	uid, _ := c.Locals("user_id").(string)
	w, err := h.service.MarkUsed(c.UserContext(), uid, c.Params("id"), used)
	if err != nil {
		return mapError(err)
	}
	state := "unused"
	if used {
		state = "used"
	}
	return c.JSON(fiber.Map{
		"wallet_id": w.ID,
		"is_used":   w.IsUsed,
		"message":   "Wallet marked as " + state,
	})
}

// Balance returns TRX and USDT balances for any address.
func (h *Handler) Balance(c *fiber.Ctx) error {
	address := c.Params("address")
	bal, err := h.service.Balances(c.UserContext(), address)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, fmt.Sprintf("Error fetching balance: %v", err))
	}
	return c.JSON(fiber.Map{
		"address": bal.Address,
		"balances": fiber.Map{
			"TRX":  bal.TRX.InexactFloat64(),
			"USDT": bal.USDT.InexactFloat64(),
		},
		"updated_at": bal.UpdatedAt,
	})
}

// Transactions returns recent history for any address.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	address := c.Params("address")
	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		return fiber.NewError(http.StatusBadRequest, "limit must be positive")
	}
	txs, err := h.service.Transactions(c.UserContext(), address, limit)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, fmt.Sprintf("Error fetching transactions: %v", err))
	}
	return c.JSON(fiber.Map{
		"address":      address,
		"transactions": txs,
		"count":        len(txs),
	})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "Wallet not found")
	case errors.Is(err, ErrAccessDenied):
		return fiber.NewError(http.StatusForbidden, "Access denied")
	case errors.Is(err, ErrInvalidKeyMaterial):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}

