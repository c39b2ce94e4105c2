package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tron-wallet/tron_wallet/internal/wallet"
)

// RegisterWalletRoutes wires the owner-scoped wallet endpoints behind auth.
func RegisterWalletRoutes(r fiber.Router, authmw fiber.Handler, h *wallet.Handler) {
	group := r.Group("/wallets", authmw)
	group.Post("/create", h.Create)
	group.Post("/import", h.Import)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Delete("/:id", h.Delete)
	group.Get("/:id/export", h.Export)
	group.Patch("/:id/mark-used", h.MarkUsed)
}
