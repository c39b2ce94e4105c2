package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tron-wallet/tron_wallet/internal/identity"
)

// Handler exposes the register and login endpoints.
type Handler struct {
	ids    *identity.Service
	tokens *Tokens
}

func NewHandler(ids *identity.Service, tokens *Tokens) *Handler {
	return &Handler{ids: ids, tokens: tokens}
}

type credentialsRequest struct {
	PIN      string `json:"pin"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Register creates a user and returns an access token.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.ids.Register(c.UserContext(), identity.Credentials{PIN: req.PIN, Password: req.Password})
	switch {
	case errors.Is(err, identity.ErrUserExists):
		return fiber.NewError(http.StatusBadRequest, "User already exists")
	case errors.Is(err, identity.ErrInvalidPIN), errors.Is(err, identity.ErrInvalidPassword):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}
	return h.respond(c, http.StatusCreated, user.ID)
}

// Login validates credentials and returns an access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.ids.Authenticate(c.UserContext(), identity.Credentials{PIN: req.PIN, Password: req.Password})
	if errors.Is(err, identity.ErrInvalidCredentials) {
		return fiber.NewError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, user.ID)
}

func (h *Handler) respond(c *fiber.Ctx, status int, userID string) error {
	tok, err := h.tokens.Issue(userID)
	if err != nil {
		return err
	}
	return c.Status(status).JSON(tokenResponse{
		AccessToken: tok.Value,
		TokenType:   "bearer",
		UserID:      userID,
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}
