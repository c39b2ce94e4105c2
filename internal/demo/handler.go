package demo

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes demo profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a demo HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type profileResponse struct {
	ID            string  `json:"id,omitempty"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	WalletAddress string  `json:"wallet_address"`
	BalanceTRX    float64 `json:"balance_trx"`
	BalanceUSDT   float64 `json:"balance_usdt"`
}

func toResponse(p Profile) profileResponse {
	return profileResponse{
		ID:            p.ID,
		Phone:         p.Phone,
		Email:         p.Email,
		Password:      p.Password,
		WalletAddress: p.WalletAddress,
		BalanceTRX:    p.BalanceTRX.InexactFloat64(),
		BalanceUSDT:   p.BalanceUSDT.InexactFloat64(),
	}
}

// Generate returns a stored demo profile.
func (h *Handler) Generate(c *fiber.Ctx) error {
	return h.respond(c, h.service.Generate)
}

// Profile returns a fresh profile without storing it.
func (h *Handler) Profile(c *fiber.Ctx) error {
	return h.respond(c, func(ctx context.Context) (Profile, error) {
		p, err := h.service.Preview(ctx)
		p.ID = ""
		return p, err
	})
}

func (h *Handler) respond(c *fiber.Ctx, produce func(context.Context) (Profile, error)) error {
	p, err := produce(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toResponse(p))
}
