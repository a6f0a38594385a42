package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainApproval "sacco-backend/internal/domain/approval"
	domainLoan "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/usecase/approval"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type decideReq struct {
	Stage    string `json:"stage" validate:"required,oneof=chairperson loan_committee management_committee"`
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Remarks  string `json:"remarks" validate:"max=1000"`
}

// Decide records one reviewing decision. The acting reviewer comes from the
// gateway headers; the stage being decided comes from the body so the server
// can detect a reviewer acting on an outdated view of the loan.
func (h *ApprovalHandler) Decide(c echo.Context) error {
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Decide(c.Request().Context(), approval.DecideInput{
		LoanID:     c.Param("loan_id"),
		Stage:      domainLoan.Stage(req.Stage),
		ApproverID: actorID(c),
		Role:       actorRole(c),
		Decision:   domainApproval.Decision(req.Decision),
		Remarks:    req.Remarks,
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApprovalHandler) History(c echo.Context) error {
	out, err := h.uc.History(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
