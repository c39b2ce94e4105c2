package middleware

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tron-wallet/tron_wallet/internal/identity"
	"github.com/tron-wallet/tron_wallet/internal/logging"
)

func postLogin(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestLoginRateLimitPerDerivedUser(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Post("/login", LoginRateLimit(cache, 2, logging.Discard()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		if status := postLogin(t, app, `{"pin":"1234"}`); status != fiber.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, status)
		}
	}
	if status := postLogin(t, app, `{"pin":"1234"}`); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", status)
	}
	if status := postLogin(t, app, `{"pin":"5678"}`); status != fiber.StatusOK {
		t.Fatalf("other PIN must have its own budget, got %d", status)
	}
	if !mr.Exists("rl:login:" + identity.DeriveUserID("1234")) {
		t.Fatalf("expected counter keyed by derived user id")
	}
}

func TestLoginRateLimitWithoutCache(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginRateLimit(nil, 1, logging.Discard()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	for i := 0; i < 3; i++ {
		if status := postLogin(t, app, `{"pin":"1234"}`); status != fiber.StatusOK {
			t.Fatalf("expected limiter to be disabled, got %d", status)
		}
	}
}

func TestPublicRateLimit(t *testing.T) {
	app := fiber.New()
	app.Get("/balance", PublicRateLimit(NewIPRateLimiter(1, 2)), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/balance", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	if statuses[0] != fiber.StatusOK || statuses[1] != fiber.StatusOK || statuses[2] != fiber.StatusTooManyRequests {
		t.Fatalf("unexpected statuses %v", statuses)
	}
}

func TestIPRateLimiterSweepsIdleBuckets(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	for i := 0; i < 100; i++ {
		rl.allow(fmt.Sprintf("10.0.0.%d", i))
	}
	if got := rl.size(); got != 100 {
		t.Fatalf("expected 100 buckets, got %d", got)
	}

	now = now.Add(limiterIdleTTL - time.Minute)
	rl.allow("10.0.0.1")

	now = now.Add(2 * time.Minute)
	rl.allow("192.168.1.1")
	if got := rl.size(); got != 2 {
		t.Fatalf("expected idle buckets swept, %d remain", got)
	}
}
