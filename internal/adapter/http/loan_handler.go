package http

import (
	"net/http"
	"strconv"

	domainLoan "paylite-backend/internal/domain/loan"
	"paylite-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	Amount     decimal.Decimal `json:"amount"      validate:"required,gte=10000,lte=50000,dec2"`
	TermMonths int             `json:"term_months" validate:"required,gte=6,lte=60"`
	Purpose    string          `json:"purpose"     validate:"required,max=500"`
}

func (h *LoanHandler) ApplyLoan(c echo.Context) error {
	var req applyLoanReq
	if code, er := bindValid(c, &req); er != nil {
		return c.JSON(code, er)
	}
	l, err := h.uc.Apply(c.Request().Context(), currentSession(c).UserID, loan.ApplyInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// Quote reads ?amount=&term_months= and books nothing.
func (h *LoanHandler) Quote(c echo.Context) error {
	amount, err := decimal.NewFromString(c.QueryParam("amount"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a number"})
	}
	term, err := strconv.Atoi(c.QueryParam("term_months"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "term_months must be an integer"})
	}
	q, err := h.uc.Quote(amount, term)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	out, err := h.uc.ListByUser(c.Request().Context(), currentSession(c).UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListAll is admin only.
func (h *LoanHandler) ListAll(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// load fetches the path loan and checks ownership. On a nil record the
// response has already been written and err is what to return.
func (h *LoanHandler) load(c echo.Context) (*domainLoan.Loan, error) {
	loanID, er := pathID(c, "loan_id")
	if er != nil {
		return nil, c.JSON(http.StatusBadRequest, er)
	}
	l, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return nil, writeError(c, err)
	}
	if !canSee(currentSession(c), l.UserID) {
		return nil, c.JSON(http.StatusForbidden, errForbidden)
	}
	return l, nil
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	l, err := h.load(c)
	if l == nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

// PayInstallment settles one scheduled repayment.
func (h *LoanHandler) PayInstallment(c echo.Context) error {
	repaymentID, er := pathID(c, "repayment_id")
	if er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	l, err := h.load(c)
	if l == nil {
		return err
	}
	paid, err := h.uc.RepayEMI(c.Request().Context(), l.LoanID, repaymentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, paid)
}

// RepayNext pays whatever installment is due next.
//
// Deprecated: clients should pay a specific repayment_id.
func (h *LoanHandler) RepayNext(c echo.Context) error {
	l, err := h.load(c)
	if l == nil {
		return err
	}
	c.Response().Header().Set("Deprecation", "true")
	paid, err := h.uc.RepayNext(c.Request().Context(), l.LoanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, paid)
}
