package qr

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// AddressValidator rejects malformed addresses before rendering.
type AddressValidator interface {
	ValidateAddress(address string) error
}

// Handler serves QR codes for receive addresses.
type Handler struct {
	validator AddressValidator
}

// NewHandler builds a QR handler. validator may be nil.
func NewHandler(validator AddressValidator) *Handler {
	return &Handler{validator: validator}
}

// Address returns a data URL QR code for the :address path parameter.
func (h *Handler) Address(c *fiber.Ctx) error {
	address := c.Params("address")
	if h.validator != nil {
		if err := h.validator.ValidateAddress(address); err != nil {
			return fiber.NewError(http.StatusBadRequest, fmt.Sprintf("Error generating QR code: %v", err))
		}
	}
	url, err := DataURL(address)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, fmt.Sprintf("Error generating QR code: %v", err))
	}
	return c.JSON(fiber.Map{"address": address, "qr_code": url})
}
