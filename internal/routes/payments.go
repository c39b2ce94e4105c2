package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tron-wallet/tron_wallet/internal/payments"
)

// RegisterPaymentRoutes wires the send endpoint. Idempotency runs after auth
// so replay keys are scoped to the caller.
func RegisterPaymentRoutes(r fiber.Router, authmw, idempotency fiber.Handler, h *payments.Handler) {
	r.Post("/send", authmw, idempotency, h.Send)
}
