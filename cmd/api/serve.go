package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "paylite-backend/internal/adapter/http"
	"paylite-backend/internal/adapter/middleware"
	"paylite-backend/internal/adapter/queue"
	"paylite-backend/internal/adapter/repository/gormstore"
	"paylite-backend/internal/adapter/repository/redisstore"
	"paylite-backend/internal/domain/event"
	"paylite-backend/internal/infrastructure/metrics"
	"paylite-backend/internal/usecase/approval"
	"paylite-backend/internal/usecase/auth"
	"paylite-backend/internal/usecase/dashboard"
	"paylite-backend/internal/usecase/loan"
	"paylite-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := bootstrap()
			if err != nil {
				return err
			}
			defer d.close()
			return serve(cmd.Context(), d)
		},
	}
}

func serve(ctx context.Context, d *deps) error {
	cfg, log := d.cfg, d.log

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	var pub event.Publisher = event.Nop{}
	if cfg.AMQPURL != "" {
		p, err := queue.NewPublisher(cfg.AMQPURL, log.Named("queue"))
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
	} else {
		log.Warn("AMQP_URL not set; domain events are dropped")
	}

	users := gormstore.NewUserRepository(d.db)
	txns := gormstore.NewTransactionRepository(d.db)
	loans := gormstore.NewLoanRepository(d.db)
	approvals := gormstore.NewApprovalRepository(d.db)
	tx := gormstore.NewGormUoW(d.db)
	sessions := redisstore.NewSessionRepository(d.rdb)

	authUC := auth.NewUsecase(users, sessions, tx, cfg.JWTSecret, cfg.TokenTTL,
		auth.WithBcryptCost(cfg.BcryptCost), auth.WithLogger(log.Named("auth")))
	paymentUC := payment.NewUsecase(txns,
		payment.WithLogger(log.Named("payment")),
		payment.WithPublisher(pub),
		payment.WithMetrics(rec),
		payment.WithProcessingDelay(cfg.PaymentDelay))
	loanUC := loan.NewUsecase(loans, txns, tx,
		loan.WithLogger(log.Named("loan")),
		loan.WithPublisher(pub),
		loan.WithMetrics(rec),
		loan.WithProcessingDelay(cfg.LoanDelay))
	approvalUC := approval.NewUsecase(loans, approvals, tx,
		approval.WithLogger(log.Named("approval")),
		approval.WithPublisher(pub),
		approval.WithMetrics(rec))
	dashUC := dashboard.NewUsecase(users, txns, loans)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover(), middleware.RequestLogger(log.Named("http")))

	httpadp.Register(e, httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "db", Ping: func(ctx context.Context) error {
				sqlDB, err := d.db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error {
				return d.rdb.Ping(ctx).Err()
			}},
		),
		Auth:      httpadp.NewAuthHandler(authUC),
		Payments:  httpadp.NewPaymentHandler(paymentUC),
		Loans:     httpadp.NewLoanHandler(loanUC),
		Approvals: httpadp.NewApprovalHandler(approvalUC),
		Dashboard: httpadp.NewDashboardHandler(dashUC),
	}, httpadp.RouterConfig{
		Authn:         authUC,
		Redis:         d.rdb,
		IdempTTL:      cfg.IdempTTL,
		AuthRateLimit: cfg.AuthRateLimit,
		Gatherer:      reg,
		Log:           log.Named("idempotency"),
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
