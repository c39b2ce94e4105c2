package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tron-wallet/tron_wallet/internal/auth"
	"github.com/tron-wallet/tron_wallet/internal/chain"
	"github.com/tron-wallet/tron_wallet/internal/config"
	"github.com/tron-wallet/tron_wallet/internal/demo"
	"github.com/tron-wallet/tron_wallet/internal/identity"
	"github.com/tron-wallet/tron_wallet/internal/middleware"
	"github.com/tron-wallet/tron_wallet/internal/notification"
	"github.com/tron-wallet/tron_wallet/internal/payments"
	"github.com/tron-wallet/tron_wallet/internal/qr"
	"github.com/tron-wallet/tron_wallet/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
// DB and Cache may be nil in development, in which case in-memory
// repositories are used and Redis-backed middleware is disabled.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
	Chain  chain.Client
}

// ErrorHandler renders every error as {"detail": "..."}. Anything other than
// a *fiber.Error becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	detail := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		detail = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Chain == nil {
		return errors.New("chain client is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	tokens, err := auth.NewTokens(d.Cfg.SessionSecret, d.Cfg.AccessTokenTTL)
	if err != nil {
		return err
	}

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	var (
		identityRepo identity.Repository
		walletRepo   wallet.Repository
		demoRepo     demo.Repository
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
		demoRepo = demo.NewPostgresRepository(d.DB)
	} else {
		d.Logger.Warn("no database configured, using in-memory repositories")
		identityRepo = identity.NewMemoryRepository()
		walletRepo = wallet.NewMemoryRepository()
		demoRepo = demo.NewMemoryRepository()
	}

	identitySvc := identity.NewService(identityRepo)
	walletSvc := wallet.NewService(walletRepo, d.Chain, d.Logger)
	notifier := notification.NewLoggerNotifier(d.Logger)
	paymentSvc := payments.NewService(walletSvc, d.Chain, notifier, d.Logger)
	generator := demo.NewGenerator(d.Chain)
	demoSvc := demo.NewService(generator, demoRepo)

	authHandler := auth.NewHandler(identitySvc, tokens)
	walletHandler := wallet.NewHandler(walletSvc, generator)
	paymentHandler := payments.NewHandler(paymentSvc)
	qrHandler := qr.NewHandler(d.Chain)
	demoHandler := demo.NewHandler(demoSvc)

	RegisterHealthRoutes(app, d)

	RegisterAuthRoutes(app, authHandler, middleware.LoginRateLimit(d.Cache, d.Cfg.LoginPerMin, d.Logger))

	public := middleware.PublicRateLimit(middleware.NewIPRateLimiter(d.Cfg.PublicRPS, d.Cfg.PublicBurst))
	RegisterPublicRoutes(app, public, walletHandler, qrHandler, demoHandler)

	jwtmw := middleware.JWTAuth(tokens)
	RegisterWalletRoutes(app, jwtmw, walletHandler)
	RegisterPaymentRoutes(app, jwtmw, middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger), paymentHandler)

	return nil
}
