package http

import (
	"net/http"

	domainApproval "paylite-backend/internal/domain/approval"
	ucApproval "paylite-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *ucApproval.Usecase }

func NewApprovalHandler(uc *ucApproval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type reviewLoanReq struct {
	Decision string `json:"decision" validate:"required,oneof=Approved Rejected"`
	Note     string `json:"note"     validate:"max=1000"`
}

// ReviewLoan records the admin decision on a pending loan.
func (h *ApprovalHandler) ReviewLoan(c echo.Context) error {
	// Validate path param
	loanID, er := pathID(c, "loan_id")
	if er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	// Bind + validate body payload JSON
	var req reviewLoanReq
	if code, er := bindValid(c, &req); er != nil {
		return c.JSON(code, er)
	}
	dto, err := h.uc.Review(c.Request().Context(), ucApproval.ReviewInput{
		LoanID:     loanID,
		ReviewerID: currentSession(c).UserID,
		Decision:   domainApproval.Decision(req.Decision),
		Note:       req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Queue lists pending loans awaiting review.
func (h *ApprovalHandler) Queue(c echo.Context) error {
	out, err := h.uc.Queue(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) GetApproval(c echo.Context) error {
	loanID, er := pathID(c, "loan_id")
	if er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	a, err := h.uc.GetByLoanID(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}
