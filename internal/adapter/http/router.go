package http

import (
	"time"

	"paylite-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Health    *Handler
	Auth      *AuthHandler
	Payments  *PaymentHandler
	Loans     *LoanHandler
	Approvals *ApprovalHandler
	Dashboard *DashboardHandler
}

type RouterConfig struct {
	Authn         middleware.Authenticator
	Redis         *redis.Client
	IdempTTL      time.Duration
	AuthRateLimit float64
	Gatherer      prometheus.Gatherer
	Log           *zap.Logger
}

// Register mounts every route on e.
func Register(e *echo.Echo, h Handlers, cfg RouterConfig) {
	e.Validator = NewValidator()

	e.GET("/health", h.Health.Health)
	if cfg.Gatherer != nil {
		e.GET("/metrics", Metrics(cfg.Gatherer))
	}

	authn := middleware.Auth(cfg.Authn)
	idem := middleware.IdempotencyMiddleware(cfg.Redis, cfg.IdempTTL, cfg.Log)

	pub := e.Group("/auth", middleware.RateLimit(cfg.AuthRateLimit, 5))
	pub.POST("/register", h.Auth.Register)
	pub.POST("/login", h.Auth.Login)
	pub.POST("/logout", h.Auth.Logout, authn)
	pub.GET("/me", h.Auth.Me, authn)

	// authenticated; mutating routes are idempotent per X-Request-Id.
	// Route-level middleware keeps unknown paths a plain 404.
	e.POST("/payments", h.Payments.CreatePayment, authn, idem)
	e.GET("/payments", h.Payments.ListPayments, authn)
	e.GET("/payments/:transaction_id", h.Payments.GetPayment, authn)
	e.GET("/payments/:transaction_id/invoice", h.Payments.GetInvoice, authn)

	e.GET("/loans/quote", h.Loans.Quote, authn)
	e.POST("/loans", h.Loans.ApplyLoan, authn, idem)
	e.GET("/loans", h.Loans.ListLoans, authn)
	e.GET("/loans/:loan_id", h.Loans.GetLoan, authn)
	e.POST("/loans/:loan_id/repayments/:repayment_id/pay", h.Loans.PayInstallment, authn, idem)
	e.POST("/loans/:loan_id/repay-next", h.Loans.RepayNext, authn, idem)

	e.GET("/dashboard", h.Dashboard.User, authn)

	admin := e.Group("/admin", authn, middleware.RequireAdmin)
	admin.GET("/users", h.Auth.ListUsers)
	admin.GET("/payments", h.Payments.ListAll)
	admin.GET("/loans", h.Loans.ListAll)
	admin.GET("/loans/pending", h.Approvals.Queue)
	admin.GET("/loans/:loan_id/approval", h.Approvals.GetApproval)
	admin.POST("/loans/:loan_id/review", h.Approvals.ReviewLoan, idem)
	admin.GET("/dashboard", h.Dashboard.Admin)
}
