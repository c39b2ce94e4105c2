package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	serviceName    = "TRON Wallet API"
	serviceVersion = "1.0.0"
)

// RegisterHealthRoutes adds the health probe and the service info endpoint.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		redisStatus := "connected"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.DB == nil {
			dbStatus = "in-memory"
		} else if err := d.DB.Ping(ctx); err != nil {
			dbStatus = "disconnected"
			d.Logger.Warn("health: postgres ping failed", "error", err)
		}
		if d.Cache == nil {
			redisStatus = "disabled"
		} else if err := d.Cache.Ping(ctx).Err(); err != nil {
			redisStatus = "disconnected"
			d.Logger.Warn("health: redis ping failed", "error", err)
		}

		status, code := "healthy", http.StatusOK
		if dbStatus == "disconnected" || redisStatus == "disconnected" {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"database":  dbStatus,
			"redis":     redisStatus,
			"api":       "running",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": serviceName,
			"version": serviceVersion,
			"network": d.Cfg.TronNetwork,
			"endpoints": fiber.Map{
				"auth":         "/auth",
				"wallets":      "/wallets",
				"send":         "/send",
				"balance":      "/balance/:address",
				"transactions": "/transactions/:address",
				"qr":           "/qr/:address",
				"demo":         "/demo",
			},
		})
	})
}
