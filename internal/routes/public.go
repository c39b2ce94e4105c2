package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tron-wallet/tron_wallet/internal/demo"
	"github.com/tron-wallet/tron_wallet/internal/qr"
	"github.com/tron-wallet/tron_wallet/internal/wallet"
)

// RegisterPublicRoutes wires the unauthenticated chain lookups and demo
// endpoints, all behind the per-IP limiter.
func RegisterPublicRoutes(r fiber.Router, limiter fiber.Handler, wallets *wallet.Handler, codes *qr.Handler, demos *demo.Handler) {
	r.Get("/balance/:address", limiter, wallets.Balance)
	r.Get("/transactions/:address", limiter, wallets.Transactions)
	r.Get("/qr/:address", limiter, codes.Address)
	r.Get("/demo/generate", limiter, demos.Generate)
	r.Get("/demo/profile", limiter, demos.Profile)
}
