package http

import (
	"net/http"

	"paylite-backend/internal/domain/transaction"
	"paylite-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type createPaymentReq struct {
	Amount       decimal.Decimal `json:"amount"        validate:"required,gt=0,dec2"`
	Channel      string          `json:"channel"       validate:"required,oneof=UPI Card"`
	Description  string          `json:"description"   validate:"required,max=500"`
	ChannelRef   string          `json:"channel_ref"   validate:"max=255"`
	MerchantName string          `json:"merchant_name" validate:"max=255"`
}

// CreatePayment always answers 201: a Failed draw is still a recorded
// transaction, and the status is in the body.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req createPaymentReq
	if code, er := bindValid(c, &req); er != nil {
		return c.JSON(code, er)
	}
	t, err := h.uc.ProcessPayment(c.Request().Context(), currentSession(c).UserID, payment.PaymentRequest{
		Amount:       req.Amount,
		Channel:      transaction.Channel(req.Channel),
		Description:  req.Description,
		ChannelRef:   req.ChannelRef,
		MerchantName: req.MerchantName,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	out, err := h.uc.ListByUser(c.Request().Context(), currentSession(c).UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListAll is admin only.
func (h *PaymentHandler) ListAll(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// load fetches the path transaction and checks ownership. On a nil record
// the response has already been written and err is what to return.
func (h *PaymentHandler) load(c echo.Context) (*transaction.Transaction, error) {
	txID, er := pathID(c, "transaction_id")
	if er != nil {
		return nil, c.JSON(http.StatusBadRequest, er)
	}
	t, err := h.uc.Get(c.Request().Context(), txID)
	if err != nil {
		return nil, writeError(c, err)
	}
	if !canSee(currentSession(c), t.UserID) {
		return nil, c.JSON(http.StatusForbidden, errForbidden)
	}
	return t, nil
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	t, err := h.load(c)
	if t == nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// GetInvoice renders ?format=json (default) or ?format=html.
func (h *PaymentHandler) GetInvoice(c echo.Context) error {
	format := c.QueryParam("format")
	if format != "" && format != "json" && format != "html" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be json or html"})
	}
	t, err := h.load(c)
	if t == nil {
		return err
	}

	inv := payment.NewInvoice(t)
	if format == "html" {
		b, err := inv.HTML()
		if err != nil {
			return writeError(c, err)
		}
		return c.HTMLBlob(http.StatusOK, b)
	}
	b, err := inv.JSON()
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+inv.InvoiceNumber+`.json"`)
	return c.JSONBlob(http.StatusOK, b)
}
