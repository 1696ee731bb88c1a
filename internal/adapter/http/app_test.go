package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paylite-backend/internal/adapter/middleware"
	"paylite-backend/internal/adapter/repository/gormstore"
	"paylite-backend/internal/adapter/repository/redisstore"
	"paylite-backend/internal/testutil/dbtest"
	"paylite-backend/internal/usecase/approval"
	"paylite-backend/internal/usecase/auth"
	"paylite-backend/internal/usecase/dashboard"
	"paylite-backend/internal/usecase/loan"
	"paylite-backend/internal/usecase/payment"
	"paylite-backend/pkg/id"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// fixedPicker always draws the same point, so payments are deterministic.
type fixedPicker float64

func (p fixedPicker) Float64() float64 { return float64(p) }

// testApp is the full router over sqlite and miniredis.
type testApp struct {
	t  *testing.T
	e  *echo.Echo
	mr *miniredis.Miniredis
}

func newTestApp(t *testing.T, draw float64) *testApp {
	t.Helper()
	gdb := dbtest.Open(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := gormstore.NewUserRepository(gdb)
	txns := gormstore.NewTransactionRepository(gdb)
	loans := gormstore.NewLoanRepository(gdb)
	approvals := gormstore.NewApprovalRepository(gdb)
	tx := gormstore.NewGormUoW(gdb)
	sessions := redisstore.NewSessionRepository(rdb)

	authUC := auth.NewUsecase(users, sessions, tx, "test-secret-0123456789", time.Hour, auth.WithBcryptCost(bcrypt.MinCost))

	e := echo.New()
	Register(e, Handlers{
		Health:    NewHandler(),
		Auth:      NewAuthHandler(authUC),
		Payments:  NewPaymentHandler(payment.NewUsecase(txns, payment.WithPicker(fixedPicker(draw)))),
		Loans:     NewLoanHandler(loan.NewUsecase(loans, txns, tx)),
		Approvals: NewApprovalHandler(approval.NewUsecase(loans, approvals, tx)),
		Dashboard: NewDashboardHandler(dashboard.NewUsecase(users, txns, loans)),
	}, RouterConfig{
		Authn:    authUC,
		Redis:    rdb,
		IdempTTL: time.Minute,
		Gatherer: prometheus.NewRegistry(),
	})
	return &testApp{t: t, e: e, mr: mr}
}

// do sends body as JSON. Mutating requests get a fresh request id unless
// hdr carries one.
func (a *testApp) do(method, path string, body any, token string, hdr ...map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd *bytes.Reader
	if s, ok := body.(string); ok {
		rd = bytes.NewReader([]byte(s))
	} else if body != nil {
		rd = mustJSON(body)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if method == stdhttp.MethodPost {
		req.Header.Set(middleware.HeaderRequestID, id.NewID32())
		req.Header.Set(middleware.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339))
	}
	for _, h := range hdr {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// register signs up and returns the bearer token and user id.
func (a *testApp) register(email string) (string, string) {
	a.t.Helper()
	rec := a.do(stdhttp.MethodPost, "/auth/register", map[string]string{
		"email": email, "password": "password123", "name": "Tester",
	}, "")
	if rec.Code != stdhttp.StatusCreated {
		a.t.Fatalf("register %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var out sessionResp
	decode(a.t, rec, &out)
	return out.Token, out.User.UserID
}

func (a *testApp) pay(token string, amount string) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.do(stdhttp.MethodPost, "/payments", map[string]any{
		"amount": json.Number(amount), "channel": "UPI", "description": "coffee",
	}, token)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}
