package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type guarantorReq struct {
	MemberID string          `json:"member_id" validate:"required,hex32"`
	Amount   decimal.Decimal `json:"amount"`
}

type applyLoanReq struct {
	MemberID   string          `json:"member_id" validate:"required,hex32"`
	LoanType   string          `json:"loan_type" validate:"required,oneof=short_term long_term holiday"`
	Principal  decimal.Decimal `json:"principal_amount"`
	TermMonths int             `json:"term_months" validate:"required,gte=1"`
	Purpose    string          `json:"purpose" validate:"required,min=10,max=500"`
	Guarantors []guarantorReq  `json:"guarantors" validate:"omitempty,dive"`
}

func (h *LoanHandler) ApplyLoan(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	in := loan.ApplyInput{
		MemberID:   req.MemberID,
		LoanType:   domain.Type(req.LoanType),
		Principal:  req.Principal,
		TermMonths: req.TermMonths,
		Purpose:    req.Purpose,
	}
	for _, g := range req.Guarantors {
		in.Guarantors = append(in.Guarantors, loan.GuarantorInput{MemberID: g.MemberID, Amount: g.Amount})
	}

	dto, err := h.uc.Apply(c.Request().Context(), in)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListLoans serves the review queues: ?status= narrows by status,
// ?stage= additionally narrows pending loans to one reviewing stage.
func (h *LoanHandler) ListLoans(c echo.Context) error {
	status := domain.Status(c.QueryParam("status"))
	stage := domain.Stage(c.QueryParam("stage"))

	var (
		out []loan.LoanDTO
		err error
	)
	switch {
	case status == domain.StatusPendingApproval || stage != "":
		out, err = h.uc.ListPending(c.Request().Context(), stage)
	case status != "":
		out, err = h.uc.ListByStatus(c.Request().Context(), status)
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status or stage query parameter required"})
	}
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListMemberLoans(c echo.Context) error {
	out, err := h.uc.ListByMember(c.Request().Context(), c.Param("member_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Stats(c echo.Context) error {
	dto, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Eligibility(c echo.Context) error {
	dto, err := h.uc.AssessEligibility(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListGuarantors(c echo.Context) error {
	out, err := h.uc.Guarantors(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type guarantorRespondReq struct {
	Accept bool `json:"accept"`
}

func (h *LoanHandler) RespondGuarantor(c echo.Context) error {
	var req guarantorRespondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.RespondGuarantor(c.Request().Context(), c.Param("guarantor_id"), actorID(c), req.Accept)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
